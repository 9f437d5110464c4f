package models

import "claimsbridge-service/internal/pkg/x12"

// ReviewInfo is the UM health care services review information.
type ReviewInfo struct {
	RequestCategory   string `json:"request_category,omitempty"`
	CertificationType string `json:"certification_type,omitempty"`
	ServiceTypeCode   string `json:"service_type_code,omitempty"`
	LevelOfService    string `json:"level_of_service,omitempty"`
	LifeThreatening   bool   `json:"life_threatening,omitempty"`
}

// ReviewOutcome is the HCR response decision on a 278 response.
type ReviewOutcome struct {
	StatusCode              string `json:"status_code"`
	AuthorizationNumber     string `json:"authorization_number,omitempty"`
	ReviewReason            string `json:"review_reason,omitempty"`
	AdditionalInfoRequired  bool   `json:"additional_info_required,omitempty"`
	AdditionalInfoDeadline  string `json:"additional_info_deadline,omitempty"`
	CertificationEffective  string `json:"certification_effective,omitempty"`
	CertificationExpiration string `json:"certification_expiration,omitempty"`
}

// CanonicalPriorAuth is the normalized 278 record, covering both the request
// (BHT06=11) and response (BHT06=13) directions.
type CanonicalPriorAuth struct {
	Envelope        x12.Envelope   `json:"envelope"`
	TransactionType string         `json:"transaction_type"`
	TraceNumber     string         `json:"trace_number,omitempty"`
	Subscriber      Party          `json:"subscriber"`
	Dependent       *Party         `json:"dependent,omitempty"`
	Requester       Party          `json:"requester"`
	UMO             Party          `json:"umo"`
	ServiceProvider *Party         `json:"service_provider,omitempty"`
	Review          ReviewInfo     `json:"review"`
	Diagnoses       []Diagnosis    `json:"diagnoses,omitempty"`
	ServiceDate     string         `json:"service_date,omitempty"`
	Outcome         *ReviewOutcome `json:"outcome,omitempty"`
}
