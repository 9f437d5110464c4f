package constvars

const (
	DecodeEligibilitySuccessMessage   = "Successfully decoded eligibility transaction"
	EncodeEligibilitySuccessMessage   = "Successfully encoded eligibility response"
	DecodeClaimSuccessMessage         = "Successfully decoded claim transaction"
	DecodeRemittanceSuccessMessage    = "Successfully decoded remittance advice"
	DecodePriorAuthSuccessMessage     = "Successfully decoded prior authorization transaction"
	EncodePriorAuthSuccessMessage     = "Successfully encoded prior authorization response"
	AnalyzePriorAuthSuccessMessage    = "Successfully analyzed prior authorization file"
	EvaluateComplianceSuccessMessage  = "Successfully evaluated resource compliance"
	EvaluateBatchSuccessMessage       = "Successfully evaluated resource batch compliance"
	GetTransactionLogsSuccessMessage  = "Successfully fetched transaction logs"
	PresignRawURLSuccessMessage       = "Successfully presigned raw transaction link"
	StartTimelineSuccessMessage       = "Successfully started decision timeline"
	RecordDecisionSuccessMessage      = "Successfully recorded authorization decision"
)
