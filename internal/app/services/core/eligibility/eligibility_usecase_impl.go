package eligibility

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claimsbridge-service/internal/app/config"
	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type eligibilityUsecase struct {
	RedisRepository          contracts.RedisRepository
	ObjectStorage            contracts.ObjectStorage
	EventPublisher           contracts.EventPublisher
	TransactionLogRepository contracts.TransactionLogRepository
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
}

var (
	eligibilityUsecaseInstance EligibilityUsecase
	onceEligibilityUsecase     sync.Once
)

func NewEligibilityUsecase(
	redisRepository contracts.RedisRepository,
	objectStorage contracts.ObjectStorage,
	eventPublisher contracts.EventPublisher,
	transactionLogRepository contracts.TransactionLogRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) EligibilityUsecase {
	onceEligibilityUsecase.Do(func() {
		eligibilityUsecaseInstance = &eligibilityUsecase{
			RedisRepository:          redisRepository,
			ObjectStorage:            objectStorage,
			EventPublisher:           eventPublisher,
			TransactionLogRepository: transactionLogRepository,
			InternalConfig:           internalConfig,
			Log:                      logger,
		}
	})
	return eligibilityUsecaseInstance
}

func (uc *eligibilityUsecase) DecodeInquiry(ctx context.Context, raw []byte) (*InquiryResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("eligibilityUsecase.DecodeInquiry called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	canonical, err := Decode270(string(raw))
	if err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeInquiry error decoding 270",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, constvars.TransactionSet270, err, start)
		return nil, err
	}

	bundle, err := ToFhir(canonical)
	if err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeInquiry error mapping 270 to FHIR",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, constvars.TransactionSet270, err, start)
		return nil, err
	}

	batch, err := compliance.EvaluateBatch([]interface{}{bundle.Patient, bundle.Coverage, bundle.Request})
	if err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeInquiry error evaluating compliance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	objectName := fmt.Sprintf("raw/270/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, raw, constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeInquiry error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	compliant := batch.NonCompliantCount == 0
	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet270,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.TraceNumber,
		ResourceTypes:            []string{constvars.ResourcePatient, constvars.ResourceCoverage, constvars.ResourceCoverageEligibilityRequest},
		Compliant:                &compliant,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet270,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourcePatient, constvars.ResourceCoverage, constvars.ResourceCoverageEligibilityRequest},
		Compliant:                &compliant,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("eligibilityUsecase.DecodeInquiry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("trace_number", canonical.TraceNumber),
		zap.Bool("compliant", compliant),
	)
	return &InquiryResult{
		Canonical:     canonical,
		Bundle:        bundle,
		Compliance:    batch,
		RawObjectName: objectName,
	}, nil
}

func (uc *eligibilityUsecase) DecodeResponse(ctx context.Context, raw []byte) (*ResponseResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("eligibilityUsecase.DecodeResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	canonical, err := Decode271(string(raw))
	if err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeResponse error decoding 271",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, constvars.TransactionSet271, err, start)
		return nil, err
	}

	response, err := ToFhirResponse(canonical)
	if err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeResponse error mapping 271 to FHIR",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, constvars.TransactionSet271, err, start)
		return nil, err
	}

	result, err := compliance.Evaluate(*response)
	if err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeResponse error evaluating compliance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if canonical.TraceNumber != "" {
		cacheKey := fmt.Sprintf(constvars.RedisKeyEligibilityResponse, canonical.TraceNumber)
		if err := uc.RedisRepository.Set(ctx, cacheKey, response, constvars.RedisTTLEligibilityResponse); err != nil {
			uc.Log.Error("eligibilityUsecase.DecodeResponse error caching response",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
			return nil, err
		}
	}

	objectName := fmt.Sprintf("raw/271/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, raw, constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("eligibilityUsecase.DecodeResponse error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet271,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.TraceNumber,
		ResourceTypes:            []string{constvars.ResourceCoverageEligibilityResponse},
		Compliant:                &result.Compliant,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet271,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourceCoverageEligibilityResponse},
		ComplianceScore:          &result.Score,
		Compliant:                &result.Compliant,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("eligibilityUsecase.DecodeResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("trace_number", canonical.TraceNumber),
		zap.Int("compliance_score", result.Score),
	)
	return &ResponseResult{
		Canonical:     canonical,
		Response:      response,
		Compliance:    result,
		RawObjectName: objectName,
	}, nil
}

func (uc *eligibilityUsecase) EncodeResponse(ctx context.Context, canonical *models.CanonicalEligibility) (*EncodeResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("eligibilityUsecase.EncodeResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	// Canonical records posted by API clients usually omit the interchange
	// identifiers; fill them from the service's own trading identity.
	if canonical.Envelope.SenderID == "" {
		canonical.Envelope.SenderID = uc.InternalConfig.X12.SenderID
	}
	if canonical.Envelope.ReceiverID == "" {
		canonical.Envelope.ReceiverID = uc.InternalConfig.X12.ReceiverID
	}

	raw, err := Encode271(canonical)
	if err != nil {
		uc.Log.Error("eligibilityUsecase.EncodeResponse error encoding 271",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, constvars.TransactionSet271, err, start)
		return nil, err
	}

	objectName := fmt.Sprintf("raw/271/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, []byte(raw), constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("eligibilityUsecase.EncodeResponse error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet271,
		Direction:                constvars.DirectionOutbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.TraceNumber,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet271,
		Direction:                constvars.DirectionOutbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("eligibilityUsecase.EncodeResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("interchange_control_number", canonical.Envelope.InterchangeControlNumber),
	)
	return &EncodeResult{
		Raw:                      raw,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		RawObjectName:            objectName,
	}, nil
}

// publishEvent pushes the decoded-transaction event; publish failures fall
// through to the dead-letter queue so a broker outage never fails the decode.
func (uc *eligibilityUsecase) publishEvent(ctx context.Context, requestID string, event models.TransactionEvent) {
	event.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("eligibilityUsecase.publishEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		event.FailedCount++
		if dlqErr := uc.EventPublisher.PublishToDeadLetter(ctx, event); dlqErr != nil {
			uc.Log.Error("eligibilityUsecase.publishEvent error publishing to dead letter",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(dlqErr),
			)
		}
	}
}

func (uc *eligibilityUsecase) recordSuccess(ctx context.Context, log *models.TransactionLog) {
	log.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("eligibilityUsecase.recordSuccess error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, log.RequestID),
			zap.Error(err),
		)
	}
}

func (uc *eligibilityUsecase) recordFailure(ctx context.Context, requestID, transactionSet string, cause error, start time.Time) {
	partnerID, _ := ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	log := &models.TransactionLog{
		RequestID:      requestID,
		PartnerID:      partnerID,
		TransactionSet: transactionSet,
		Direction:      constvars.DirectionInbound,
		Succeeded:      false,
		FailureReason:  cause.Error(),
		ProcessedAt:    time.Now().UTC(),
		DurationMillis: time.Since(start).Milliseconds(),
	}
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("eligibilityUsecase.recordFailure error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
