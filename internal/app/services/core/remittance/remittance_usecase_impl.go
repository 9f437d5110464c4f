package remittance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type remittanceUsecase struct {
	RedisRepository          contracts.RedisRepository
	ObjectStorage            contracts.ObjectStorage
	EventPublisher           contracts.EventPublisher
	TransactionLogRepository contracts.TransactionLogRepository
	Log                      *zap.Logger
}

var (
	remittanceUsecaseInstance RemittanceUsecase
	onceRemittanceUsecase     sync.Once
)

func NewRemittanceUsecase(
	redisRepository contracts.RedisRepository,
	objectStorage contracts.ObjectStorage,
	eventPublisher contracts.EventPublisher,
	transactionLogRepository contracts.TransactionLogRepository,
	logger *zap.Logger,
) RemittanceUsecase {
	onceRemittanceUsecase.Do(func() {
		remittanceUsecaseInstance = &remittanceUsecase{
			RedisRepository:          redisRepository,
			ObjectStorage:            objectStorage,
			EventPublisher:           eventPublisher,
			TransactionLogRepository: transactionLogRepository,
			Log:                      logger,
		}
	})
	return remittanceUsecaseInstance
}

func (uc *remittanceUsecase) DecodeRemittance(ctx context.Context, raw []byte) (*RemittanceResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("remittanceUsecase.DecodeRemittance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	canonical, err := Decode835(string(raw))
	if err != nil {
		uc.Log.Error("remittanceUsecase.DecodeRemittance error decoding 835",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	eobs, err := ToFhir(canonical)
	if err != nil {
		uc.Log.Error("remittanceUsecase.DecodeRemittance error mapping 835 to FHIR",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	resources := make([]interface{}, len(eobs))
	for i, eob := range eobs {
		resources[i] = eob
	}
	batch, err := compliance.EvaluateBatch(resources)
	if err != nil {
		uc.Log.Error("remittanceUsecase.DecodeRemittance error evaluating compliance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if canonical.CheckNumber != "" {
		cacheKey := fmt.Sprintf(constvars.RedisKeyRemittance, canonical.CheckNumber)
		if err := uc.RedisRepository.Set(ctx, cacheKey, eobs, constvars.RedisTTLRemittance); err != nil {
			uc.Log.Error("remittanceUsecase.DecodeRemittance error caching remittance",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
			return nil, err
		}
	}

	objectName := fmt.Sprintf("raw/835/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, raw, constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("remittanceUsecase.DecodeRemittance error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	compliant := batch.NonCompliantCount == 0
	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet835,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.CheckNumber,
		ResourceTypes:            []string{constvars.ResourceExplanationOfBenefit},
		Compliant:                &compliant,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet835,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourceExplanationOfBenefit},
		Compliant:                &compliant,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("remittanceUsecase.DecodeRemittance succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("check_number", canonical.CheckNumber),
		zap.Int("claim_count", len(eobs)),
	)
	return &RemittanceResult{
		Canonical:             canonical,
		ExplanationOfBenefits: eobs,
		Compliance:            batch,
		RawObjectName:         objectName,
	}, nil
}

func (uc *remittanceUsecase) publishEvent(ctx context.Context, requestID string, event models.TransactionEvent) {
	event.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("remittanceUsecase.publishEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		event.FailedCount++
		if dlqErr := uc.EventPublisher.PublishToDeadLetter(ctx, event); dlqErr != nil {
			uc.Log.Error("remittanceUsecase.publishEvent error publishing to dead letter",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(dlqErr),
			)
		}
	}
}

func (uc *remittanceUsecase) recordSuccess(ctx context.Context, log *models.TransactionLog) {
	log.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("remittanceUsecase.recordSuccess error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, log.RequestID),
			zap.Error(err),
		)
	}
}

func (uc *remittanceUsecase) recordFailure(ctx context.Context, requestID string, cause error, start time.Time) {
	partnerID, _ := ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	log := &models.TransactionLog{
		RequestID:      requestID,
		PartnerID:      partnerID,
		TransactionSet: constvars.TransactionSet835,
		Direction:      constvars.DirectionInbound,
		Succeeded:      false,
		FailureReason:  cause.Error(),
		ProcessedAt:    time.Now().UTC(),
		DurationMillis: time.Since(start).Milliseconds(),
	}
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("remittanceUsecase.recordFailure error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
