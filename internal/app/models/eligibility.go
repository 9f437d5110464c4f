package models

import "claimsbridge-service/internal/pkg/x12"

// Party is one NM1-anchored participant (subscriber, dependent, provider,
// payer). Fields follow the 2100 loop layout; anything the standard marks
// situational is optional.
type Party struct {
	EntityCode  string `json:"entity_code"`
	LastName    string `json:"last_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	MiddleName  string `json:"middle_name,omitempty"`
	OrgName     string `json:"org_name,omitempty"`
	IDQualifier string `json:"id_qualifier,omitempty"`
	MemberID    string `json:"member_id,omitempty"`
	NPI         string `json:"npi,omitempty"`
	BirthDate   string `json:"birth_date,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// BenefitInfo is one EB (271) benefit information entry.
type BenefitInfo struct {
	InfoCode        string  `json:"info_code"`
	CoverageLevel   string  `json:"coverage_level,omitempty"`
	ServiceTypeCode string  `json:"service_type_code,omitempty"`
	PlanDescription string  `json:"plan_description,omitempty"`
	TimePeriod      string  `json:"time_period,omitempty"`
	Amount          float64 `json:"amount,omitempty"`
	InNetwork       bool    `json:"in_network,omitempty"`
}

// CanonicalEligibility is the normalized 270/271 record: the sole input to the
// FHIR encode step. Immutable once produced by decode.
type CanonicalEligibility struct {
	Envelope         x12.Envelope  `json:"envelope"`
	TraceNumber      string        `json:"trace_number,omitempty"`
	Subscriber       Party         `json:"subscriber"`
	Dependent        *Party        `json:"dependent,omitempty"`
	Provider         Party         `json:"provider"`
	Payer            Party         `json:"payer"`
	ServiceTypeCodes []string      `json:"service_type_codes,omitempty"`
	EligibilityDate  string        `json:"eligibility_date,omitempty"`
	Benefits         []BenefitInfo `json:"benefits,omitempty"`
}
