package requests

import "claimsbridge-service/internal/pkg/fhir_dto"

// PriorAuthDecisionRequest records a utilization review decision against a
// previously decoded 278 request, identified by its trace number.
type PriorAuthDecisionRequest struct {
	TraceNumber string                `json:"trace_number" validate:"required"`
	Response    fhir_dto.ClaimResponse `json:"response" validate:"required"`
}
