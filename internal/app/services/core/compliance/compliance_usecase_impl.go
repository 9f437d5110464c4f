package compliance

import (
	"context"
	"sync"

	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type complianceUsecase struct {
	Log *zap.Logger
}

var (
	complianceUsecaseInstance ComplianceUsecase
	onceComplianceUsecase     sync.Once
)

func NewComplianceUsecase(logger *zap.Logger) ComplianceUsecase {
	onceComplianceUsecase.Do(func() {
		complianceUsecaseInstance = &complianceUsecase{
			Log: logger,
		}
	})
	return complianceUsecaseInstance
}

func (uc *complianceUsecase) Evaluate(ctx context.Context, request *requests.EvaluateComplianceRequest) (Result, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("complianceUsecase.Evaluate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("resource_type", request.ResourceType),
	)

	resource, err := bindResource(request.ResourceType, request.Resource)
	if err != nil {
		uc.Log.Error("complianceUsecase.Evaluate error binding resource",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("resource_type", request.ResourceType),
			zap.Error(err),
		)
		return Result{}, err
	}

	result, err := Evaluate(resource)
	if err != nil {
		uc.Log.Error("complianceUsecase.Evaluate error evaluating resource",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return Result{}, err
	}

	uc.Log.Info("complianceUsecase.Evaluate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("compliant", result.Compliant),
		zap.Int("score", result.Score),
	)
	return result, nil
}

func (uc *complianceUsecase) EvaluateBatch(ctx context.Context, request *requests.EvaluateBatchRequest) (BatchResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("complianceUsecase.EvaluateBatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("resource_count", len(request.Resources)),
	)

	resources := make([]interface{}, 0, len(request.Resources))
	for _, each := range request.Resources {
		resource, err := bindResource(each.ResourceType, each.Resource)
		if err != nil {
			uc.Log.Error("complianceUsecase.EvaluateBatch error binding resource",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("resource_type", each.ResourceType),
				zap.Error(err),
			)
			return BatchResult{}, err
		}
		resources = append(resources, resource)
	}

	batch, err := EvaluateBatch(resources)
	if err != nil {
		uc.Log.Error("complianceUsecase.EvaluateBatch error evaluating batch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return BatchResult{}, err
	}

	uc.Log.Info("complianceUsecase.EvaluateBatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("compliant_count", batch.CompliantCount),
		zap.Int("non_compliant_count", batch.NonCompliantCount),
	)
	return batch, nil
}

// bindResource parses the raw JSON into the typed DTO named by resourceType.
// The closed type list mirrors the rule registry in Evaluate.
func bindResource(resourceType string, raw json.RawMessage) (interface{}, error) {
	switch resourceType {
	case constvars.ResourcePatient:
		var resource fhir_dto.Patient
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceCoverage:
		var resource fhir_dto.Coverage
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceCoverageEligibilityRequest:
		var resource fhir_dto.CoverageEligibilityRequest
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceCoverageEligibilityResponse:
		var resource fhir_dto.CoverageEligibilityResponse
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceClaim:
		var resource fhir_dto.Claim
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceClaimResponse:
		var resource fhir_dto.ClaimResponse
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceServiceRequest:
		var resource fhir_dto.ServiceRequest
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	case constvars.ResourceExplanationOfBenefit:
		var resource fhir_dto.ExplanationOfBenefit
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return resource, nil
	default:
		return nil, exceptions.ErrUnknownResourceType(resourceType)
	}
}
