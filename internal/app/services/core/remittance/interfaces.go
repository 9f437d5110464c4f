package remittance

import (
	"context"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/fhir_dto"
)

// RemittanceResult is the full outcome of decoding an inbound 835 remittance
// advice. One ExplanationOfBenefit is produced per CLP claim payment loop.
type RemittanceResult struct {
	Canonical             *models.CanonicalRemittance     `json:"canonical"`
	ExplanationOfBenefits []fhir_dto.ExplanationOfBenefit `json:"explanation_of_benefits"`
	Compliance            compliance.BatchResult          `json:"compliance"`
	RawObjectName         string                          `json:"raw_object_name,omitempty"`
}

type RemittanceUsecase interface {
	DecodeRemittance(ctx context.Context, raw []byte) (*RemittanceResult, error)
}
