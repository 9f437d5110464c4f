package priorauth

import (
	"context"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/fhir_dto"
	"claimsbridge-service/internal/pkg/sla"
)

// RequestResult is the full outcome of decoding an inbound 278 request. The
// decision timeline starts at receipt and is cached against the trace number
// so the eventual decision can be checked for SLA compliance.
type RequestResult struct {
	Canonical     *models.CanonicalPriorAuth `json:"canonical"`
	Bundle        *PriorAuthBundle           `json:"bundle"`
	Timeline      sla.Timeline               `json:"timeline"`
	Compliance    compliance.BatchResult     `json:"compliance"`
	RawObjectName string                     `json:"raw_object_name,omitempty"`
}

// ResponseResult is the full outcome of decoding an inbound 278 response.
// Timeline is set when the matching request's timeline was found in cache.
type ResponseResult struct {
	Canonical     *models.CanonicalPriorAuth `json:"canonical"`
	Response      *fhir_dto.ClaimResponse    `json:"response"`
	Timeline      *sla.Timeline              `json:"timeline,omitempty"`
	Compliance    compliance.Result          `json:"compliance"`
	RawObjectName string                     `json:"raw_object_name,omitempty"`
}

// DecisionResult carries the outbound 278 response encoded from a review
// decision recorded against a pending request.
type DecisionResult struct {
	Raw           string                     `json:"raw"`
	Canonical     *models.CanonicalPriorAuth `json:"canonical"`
	Timeline      *sla.Timeline              `json:"timeline,omitempty"`
	RawObjectName string                     `json:"raw_object_name,omitempty"`
}

type PriorAuthUsecase interface {
	DecodeRequest(ctx context.Context, raw []byte) (*RequestResult, error)
	DecodeResponse(ctx context.Context, raw []byte) (*ResponseResult, error)
	RecordDecision(ctx context.Context, request *requests.PriorAuthDecisionRequest) (*DecisionResult, error)
	Analyze(ctx context.Context, raw []byte) (*QREReport, error)
}
