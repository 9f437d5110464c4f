package claims

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type claimUsecase struct {
	RedisRepository          contracts.RedisRepository
	ObjectStorage            contracts.ObjectStorage
	EventPublisher           contracts.EventPublisher
	TransactionLogRepository contracts.TransactionLogRepository
	Log                      *zap.Logger
}

var (
	claimUsecaseInstance ClaimUsecase
	onceClaimUsecase     sync.Once
)

func NewClaimUsecase(
	redisRepository contracts.RedisRepository,
	objectStorage contracts.ObjectStorage,
	eventPublisher contracts.EventPublisher,
	transactionLogRepository contracts.TransactionLogRepository,
	logger *zap.Logger,
) ClaimUsecase {
	onceClaimUsecase.Do(func() {
		claimUsecaseInstance = &claimUsecase{
			RedisRepository:          redisRepository,
			ObjectStorage:            objectStorage,
			EventPublisher:           eventPublisher,
			TransactionLogRepository: transactionLogRepository,
			Log:                      logger,
		}
	})
	return claimUsecaseInstance
}

func (uc *claimUsecase) DecodeClaim(ctx context.Context, raw []byte) (*ClaimResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("claimUsecase.DecodeClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	canonical, err := Decode837(string(raw))
	if err != nil {
		uc.Log.Error("claimUsecase.DecodeClaim error decoding 837",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	// Clearinghouses retransmit whole files; the first interchange wins and
	// replays are rejected while the guard key lives.
	guardKey := fmt.Sprintf(constvars.RedisKeyClaimInterchange, canonical.Envelope.InterchangeControlNumber)
	fresh, err := uc.RedisRepository.TrySetNX(ctx, guardKey, requestID, constvars.RedisTTLInterchangeGuard)
	if err != nil {
		uc.Log.Error("claimUsecase.DecodeClaim error checking interchange guard",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !fresh {
		uc.Log.Warn("claimUsecase.DecodeClaim duplicate interchange rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("interchange_control_number", canonical.Envelope.InterchangeControlNumber),
		)
		if incErr := uc.RedisRepository.Increment(ctx, constvars.RedisKeyClaimDuplicateCount); incErr != nil {
			uc.Log.Error("claimUsecase.DecodeClaim error counting duplicate",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(incErr),
			)
		}
		dupErr := exceptions.ErrDuplicateInterchange(canonical.Envelope.InterchangeControlNumber)
		uc.recordFailure(ctx, requestID, dupErr, start)
		return nil, dupErr
	}

	claim, err := ToFhir(canonical)
	if err != nil {
		uc.Log.Error("claimUsecase.DecodeClaim error mapping 837 to FHIR",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	result, err := compliance.Evaluate(*claim)
	if err != nil {
		uc.Log.Error("claimUsecase.DecodeClaim error evaluating compliance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	objectName := fmt.Sprintf("raw/837/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, raw, constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("claimUsecase.DecodeClaim error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet837,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		ResourceTypes:            []string{constvars.ResourceClaim},
		Compliant:                &result.Compliant,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet837,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourceClaim},
		ComplianceScore:          &result.Score,
		Compliant:                &result.Compliant,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("claimUsecase.DecodeClaim succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("claim_id", canonical.ClaimID),
		zap.Int("service_lines", len(canonical.ServiceLines)),
		zap.Int("compliance_score", result.Score),
	)
	return &ClaimResult{
		Canonical:     canonical,
		Claim:         claim,
		Compliance:    result,
		RawObjectName: objectName,
	}, nil
}

func (uc *claimUsecase) publishEvent(ctx context.Context, requestID string, event models.TransactionEvent) {
	event.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("claimUsecase.publishEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		event.FailedCount++
		if dlqErr := uc.EventPublisher.PublishToDeadLetter(ctx, event); dlqErr != nil {
			uc.Log.Error("claimUsecase.publishEvent error publishing to dead letter",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(dlqErr),
			)
		}
	}
}

func (uc *claimUsecase) recordSuccess(ctx context.Context, log *models.TransactionLog) {
	log.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("claimUsecase.recordSuccess error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, log.RequestID),
			zap.Error(err),
		)
	}
}

func (uc *claimUsecase) recordFailure(ctx context.Context, requestID string, cause error, start time.Time) {
	partnerID, _ := ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	log := &models.TransactionLog{
		RequestID:      requestID,
		PartnerID:      partnerID,
		TransactionSet: constvars.TransactionSet837,
		Direction:      constvars.DirectionInbound,
		Succeeded:      false,
		FailureReason:  cause.Error(),
		ProcessedAt:    time.Now().UTC(),
		DurationMillis: time.Since(start).Milliseconds(),
	}
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("claimUsecase.recordFailure error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
