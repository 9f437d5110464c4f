package eligibility

import (
	"context"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/fhir_dto"
)

// InquiryResult is the full outcome of decoding an inbound 270 inquiry.
type InquiryResult struct {
	Canonical     *models.CanonicalEligibility `json:"canonical"`
	Bundle        *EligibilityBundle           `json:"bundle"`
	Compliance    compliance.BatchResult       `json:"compliance"`
	RawObjectName string                       `json:"raw_object_name,omitempty"`
}

// ResponseResult is the full outcome of decoding an inbound 271 response.
type ResponseResult struct {
	Canonical     *models.CanonicalEligibility          `json:"canonical"`
	Response      *fhir_dto.CoverageEligibilityResponse `json:"response"`
	Compliance    compliance.Result                     `json:"compliance"`
	RawObjectName string                                `json:"raw_object_name,omitempty"`
}

// EncodeResult carries an encoded outbound interchange.
type EncodeResult struct {
	Raw                      string `json:"raw"`
	InterchangeControlNumber string `json:"interchange_control_number"`
	RawObjectName            string `json:"raw_object_name,omitempty"`
}

type EligibilityUsecase interface {
	DecodeInquiry(ctx context.Context, raw []byte) (*InquiryResult, error)
	DecodeResponse(ctx context.Context, raw []byte) (*ResponseResult, error)
	EncodeResponse(ctx context.Context, canonical *models.CanonicalEligibility) (*EncodeResult, error)
}
