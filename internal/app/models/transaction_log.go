package models

import "time"

// TransactionLog is one processed-transaction audit document, stored per
// decode/encode call for operator remediation and reporting.
type TransactionLog struct {
	ID                       string    `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID                string    `bson:"requestId" json:"request_id"`
	PartnerID                string    `bson:"partnerId,omitempty" json:"partner_id,omitempty"`
	TransactionSet           string    `bson:"transactionSet" json:"transaction_set"`
	Direction                string    `bson:"direction" json:"direction"`
	InterchangeControlNumber string    `bson:"interchangeControlNumber" json:"interchange_control_number"`
	TransactionControlNumber string    `bson:"transactionControlNumber" json:"transaction_control_number"`
	RawObjectName            string    `bson:"rawObjectName,omitempty" json:"raw_object_name,omitempty"`
	ResourceTypes            []string  `bson:"resourceTypes,omitempty" json:"resource_types,omitempty"`
	ComplianceScore          *int      `bson:"complianceScore,omitempty" json:"compliance_score,omitempty"`
	Compliant                *bool     `bson:"compliant,omitempty" json:"compliant,omitempty"`
	Succeeded                bool      `bson:"succeeded" json:"succeeded"`
	FailureReason            string    `bson:"failureReason,omitempty" json:"failure_reason,omitempty"`
	ProcessedAt              time.Time `bson:"processedAt" json:"processed_at"`
	DurationMillis           int64     `bson:"durationMillis" json:"duration_millis"`
}
