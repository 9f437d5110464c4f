package claims

import (
	"context"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/fhir_dto"
)

// ClaimResult is the full outcome of decoding an inbound 837 claim.
type ClaimResult struct {
	Canonical     *models.CanonicalClaim `json:"canonical"`
	Claim         *fhir_dto.Claim        `json:"claim"`
	Compliance    compliance.Result      `json:"compliance"`
	RawObjectName string                 `json:"raw_object_name,omitempty"`
}

type ClaimUsecase interface {
	DecodeClaim(ctx context.Context, raw []byte) (*ClaimResult, error)
}
