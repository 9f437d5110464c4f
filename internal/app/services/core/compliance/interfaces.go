package compliance

import (
	"context"

	"claimsbridge-service/internal/pkg/dto/requests"
)

type ComplianceUsecase interface {
	Evaluate(ctx context.Context, request *requests.EvaluateComplianceRequest) (Result, error)
	EvaluateBatch(ctx context.Context, request *requests.EvaluateBatchRequest) (BatchResult, error)
}
