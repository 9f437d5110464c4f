package priorauth

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
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/exceptions"
	"claimsbridge-service/internal/pkg/sla"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type priorAuthUsecase struct {
	RedisRepository          contracts.RedisRepository
	ObjectStorage            contracts.ObjectStorage
	EventPublisher           contracts.EventPublisher
	TransactionLogRepository contracts.TransactionLogRepository
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
}

var (
	priorAuthUsecaseInstance PriorAuthUsecase
	oncePriorAuthUsecase     sync.Once
)

func NewPriorAuthUsecase(
	redisRepository contracts.RedisRepository,
	objectStorage contracts.ObjectStorage,
	eventPublisher contracts.EventPublisher,
	transactionLogRepository contracts.TransactionLogRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) PriorAuthUsecase {
	oncePriorAuthUsecase.Do(func() {
		priorAuthUsecaseInstance = &priorAuthUsecase{
			RedisRepository:          redisRepository,
			ObjectStorage:            objectStorage,
			EventPublisher:           eventPublisher,
			TransactionLogRepository: transactionLogRepository,
			InternalConfig:           internalConfig,
			Log:                      logger,
		}
	})
	return priorAuthUsecaseInstance
}

func (uc *priorAuthUsecase) DecodeRequest(ctx context.Context, raw []byte) (*RequestResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("priorAuthUsecase.DecodeRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	canonical, err := Decode278Request(string(raw))
	if err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeRequest error decoding 278 request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	bundle, err := ToFhir(canonical)
	if err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeRequest error mapping 278 to FHIR",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	timeline := StartTimeline(canonical, start.UTC())

	batch, err := compliance.EvaluateBatch([]interface{}{bundle.ServiceRequest, bundle.Claim})
	if err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeRequest error evaluating compliance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if canonical.TraceNumber != "" {
		requestKey := fmt.Sprintf(constvars.RedisKeyPriorAuthRequest, canonical.TraceNumber)
		if err := uc.RedisRepository.Set(ctx, requestKey, canonical, constvars.RedisTTLPriorAuth); err != nil {
			uc.Log.Error("priorAuthUsecase.DecodeRequest error caching request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", requestKey),
				zap.Error(err),
			)
			return nil, err
		}
		timelineKey := fmt.Sprintf(constvars.RedisKeyPriorAuthTimeline, canonical.TraceNumber)
		if err := uc.RedisRepository.Set(ctx, timelineKey, timeline, constvars.RedisTTLPriorAuth); err != nil {
			uc.Log.Error("priorAuthUsecase.DecodeRequest error caching timeline",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", timelineKey),
				zap.Error(err),
			)
			return nil, err
		}
	}

	objectName := fmt.Sprintf("raw/278/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, raw, constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeRequest error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	compliant := batch.NonCompliantCount == 0
	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet278,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.TraceNumber,
		ResourceTypes:            []string{constvars.ResourceServiceRequest, constvars.ResourceClaim},
		Compliant:                &compliant,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet278,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourceServiceRequest, constvars.ResourceClaim},
		Compliant:                &compliant,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("priorAuthUsecase.DecodeRequest succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("trace_number", canonical.TraceNumber),
		zap.String("sla_request_type", string(timeline.RequestType)),
		zap.Time("due_at", timeline.DueAt),
	)
	return &RequestResult{
		Canonical:     canonical,
		Bundle:        bundle,
		Timeline:      timeline,
		Compliance:    batch,
		RawObjectName: objectName,
	}, nil
}

func (uc *priorAuthUsecase) DecodeResponse(ctx context.Context, raw []byte) (*ResponseResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("priorAuthUsecase.DecodeResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	canonical, err := Decode278Response(string(raw))
	if err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeResponse error decoding 278 response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	response, err := ToFhirResponse(canonical)
	if err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeResponse error mapping 278 to FHIR",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	timeline := uc.closeTimeline(ctx, requestID, canonical.TraceNumber, start.UTC())

	var result compliance.Result
	if timeline != nil {
		result, err = compliance.EvaluateWithTimeline(*response, *timeline)
	} else {
		result, err = compliance.Evaluate(*response)
	}
	if err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeResponse error evaluating compliance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if canonical.TraceNumber != "" {
		cacheKey := fmt.Sprintf(constvars.RedisKeyPriorAuthResponse, canonical.TraceNumber)
		if err := uc.RedisRepository.Set(ctx, cacheKey, response, constvars.RedisTTLPriorAuth); err != nil {
			uc.Log.Error("priorAuthUsecase.DecodeResponse error caching response",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", cacheKey),
				zap.Error(err),
			)
			return nil, err
		}
	}

	objectName := fmt.Sprintf("raw/278/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, raw, constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("priorAuthUsecase.DecodeResponse error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet278,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.TraceNumber,
		ResourceTypes:            []string{constvars.ResourceClaimResponse},
		Compliant:                &result.Compliant,
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet278,
		Direction:                constvars.DirectionInbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourceClaimResponse},
		ComplianceScore:          &result.Score,
		Compliant:                &result.Compliant,
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	uc.Log.Info("priorAuthUsecase.DecodeResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("trace_number", canonical.TraceNumber),
		zap.Int("compliance_score", result.Score),
	)
	return &ResponseResult{
		Canonical:     canonical,
		Response:      response,
		Timeline:      timeline,
		Compliance:    result,
		RawObjectName: objectName,
	}, nil
}

func (uc *priorAuthUsecase) RecordDecision(ctx context.Context, request *requests.PriorAuthDecisionRequest) (*DecisionResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()
	uc.Log.Info("priorAuthUsecase.RecordDecision called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("trace_number", request.TraceNumber),
	)

	requestKey := fmt.Sprintf(constvars.RedisKeyPriorAuthRequest, request.TraceNumber)
	cached, err := uc.RedisRepository.Get(ctx, requestKey)
	if err != nil {
		uc.Log.Error("priorAuthUsecase.RecordDecision error fetching cached request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("cache_key", requestKey),
			zap.Error(err),
		)
		return nil, err
	}
	if cached == "" {
		uc.Log.Error("priorAuthUsecase.RecordDecision no pending request for trace number",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("trace_number", request.TraceNumber),
		)
		return nil, exceptions.ErrPriorAuthRequestNotFound(request.TraceNumber)
	}

	canonical := new(models.CanonicalPriorAuth)
	if err := json.Unmarshal([]byte(cached), canonical); err != nil {
		uc.Log.Error("priorAuthUsecase.RecordDecision error parsing cached request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	outcome, err := FromFhirResponse(&request.Response)
	if err != nil {
		uc.Log.Error("priorAuthUsecase.RecordDecision error extracting review outcome",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}
	canonical.TransactionType = constvars.TransactionTypeResponse
	canonical.Outcome = outcome
	if canonical.Envelope.SenderID == "" {
		canonical.Envelope.SenderID = uc.InternalConfig.X12.SenderID
	}
	if canonical.Envelope.ReceiverID == "" {
		canonical.Envelope.ReceiverID = uc.InternalConfig.X12.ReceiverID
	}

	raw, err := Encode278Response(canonical)
	if err != nil {
		uc.Log.Error("priorAuthUsecase.RecordDecision error encoding 278 response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.recordFailure(ctx, requestID, err, start)
		return nil, err
	}

	timeline := uc.closeTimeline(ctx, requestID, request.TraceNumber, start.UTC())

	objectName := fmt.Sprintf("raw/278/%s.edi", requestID)
	if _, err := uc.ObjectStorage.PutRawTransaction(ctx, objectName, []byte(raw), constvars.MIMEApplicationEDIX12); err != nil {
		uc.Log.Error("priorAuthUsecase.RecordDecision error archiving raw interchange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvent(ctx, requestID, models.TransactionEvent{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet278,
		Direction:                constvars.DirectionOutbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TraceNumber:              canonical.TraceNumber,
		ResourceTypes:            []string{constvars.ResourceClaimResponse},
		RawObjectName:            objectName,
	})

	uc.recordSuccess(ctx, &models.TransactionLog{
		RequestID:                requestID,
		TransactionSet:           constvars.TransactionSet278,
		Direction:                constvars.DirectionOutbound,
		InterchangeControlNumber: canonical.Envelope.InterchangeControlNumber,
		TransactionControlNumber: canonical.Envelope.TransactionSetControlNumber,
		RawObjectName:            objectName,
		ResourceTypes:            []string{constvars.ResourceClaimResponse},
		Succeeded:                true,
		ProcessedAt:              time.Now().UTC(),
		DurationMillis:           time.Since(start).Milliseconds(),
	})

	// The decision closes the pending-request window; drop the cache entries
	// instead of waiting out their TTL.
	timelineKey := fmt.Sprintf(constvars.RedisKeyPriorAuthTimeline, request.TraceNumber)
	for _, key := range []string{requestKey, timelineKey} {
		if delErr := uc.RedisRepository.Delete(ctx, key); delErr != nil {
			uc.Log.Error("priorAuthUsecase.RecordDecision error deleting cache entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", key),
				zap.Error(delErr),
			)
		}
	}

	uc.Log.Info("priorAuthUsecase.RecordDecision succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("trace_number", request.TraceNumber),
		zap.String("status_code", outcome.StatusCode),
	)
	return &DecisionResult{
		Raw:           raw,
		Canonical:     canonical,
		Timeline:      timeline,
		RawObjectName: objectName,
	}, nil
}

func (uc *priorAuthUsecase) Analyze(ctx context.Context, raw []byte) (*QREReport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("priorAuthUsecase.Analyze called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("payload_bytes", len(raw)),
	)

	report := AnalyzeQRE(string(raw), DefaultQREConfig())

	uc.Log.Info("priorAuthUsecase.Analyze succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("valid", report.Valid),
		zap.Int("error_count", report.ErrorCount),
		zap.Int("warning_count", report.WarningCount),
		zap.String("query_method", report.QueryMethod),
	)
	return &report, nil
}

// closeTimeline marks the cached decision timeline decided and writes it
// back. A missing timeline is not an error: the matching request may never
// have passed through this service.
func (uc *priorAuthUsecase) closeTimeline(ctx context.Context, requestID, traceNumber string, decidedAt time.Time) *sla.Timeline {
	if traceNumber == "" {
		return nil
	}
	timelineKey := fmt.Sprintf(constvars.RedisKeyPriorAuthTimeline, traceNumber)
	cached, err := uc.RedisRepository.Get(ctx, timelineKey)
	if err != nil || cached == "" {
		if err != nil {
			uc.Log.Error("priorAuthUsecase.closeTimeline error fetching timeline",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("cache_key", timelineKey),
				zap.Error(err),
			)
		}
		return nil
	}

	var timeline sla.Timeline
	if err := json.Unmarshal([]byte(cached), &timeline); err != nil {
		uc.Log.Error("priorAuthUsecase.closeTimeline error parsing timeline",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}

	timeline = sla.RecordDecision(timeline, decidedAt)
	if err := uc.RedisRepository.Set(ctx, timelineKey, timeline, constvars.RedisTTLPriorAuth); err != nil {
		uc.Log.Error("priorAuthUsecase.closeTimeline error storing timeline",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("cache_key", timelineKey),
			zap.Error(err),
		)
	}
	return &timeline
}

func (uc *priorAuthUsecase) publishEvent(ctx context.Context, requestID string, event models.TransactionEvent) {
	event.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("priorAuthUsecase.publishEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		event.FailedCount++
		if dlqErr := uc.EventPublisher.PublishToDeadLetter(ctx, event); dlqErr != nil {
			uc.Log.Error("priorAuthUsecase.publishEvent error publishing to dead letter",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(dlqErr),
			)
		}
	}
}

func (uc *priorAuthUsecase) recordSuccess(ctx context.Context, log *models.TransactionLog) {
	log.PartnerID, _ = ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("priorAuthUsecase.recordSuccess error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, log.RequestID),
			zap.Error(err),
		)
	}
}

func (uc *priorAuthUsecase) recordFailure(ctx context.Context, requestID string, cause error, start time.Time) {
	partnerID, _ := ctx.Value(constvars.CONTEXT_PARTNER_ID_KEY).(string)
	log := &models.TransactionLog{
		RequestID:      requestID,
		PartnerID:      partnerID,
		TransactionSet: constvars.TransactionSet278,
		Direction:      constvars.DirectionInbound,
		Succeeded:      false,
		FailureReason:  cause.Error(),
		ProcessedAt:    time.Now().UTC(),
		DurationMillis: time.Since(start).Milliseconds(),
	}
	if err := uc.TransactionLogRepository.Insert(ctx, log); err != nil {
		uc.Log.Error("priorAuthUsecase.recordFailure error inserting transaction log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
