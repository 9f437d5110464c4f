package transactions

import (
	"context"
	"sync"

	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type transactionUsecase struct {
	TransactionLogRepository contracts.TransactionLogRepository
	ObjectStorage            contracts.ObjectStorage
	Log                      *zap.Logger
}

var (
	transactionUsecaseInstance TransactionUsecase
	onceTransactionUsecase     sync.Once
)

func NewTransactionUsecase(
	transactionLogRepository contracts.TransactionLogRepository,
	objectStorage contracts.ObjectStorage,
	logger *zap.Logger,
) TransactionUsecase {
	onceTransactionUsecase.Do(func() {
		transactionUsecaseInstance = &transactionUsecase{
			TransactionLogRepository: transactionLogRepository,
			ObjectStorage:            objectStorage,
			Log:                      logger,
		}
	})
	return transactionUsecaseInstance
}

func (uc *transactionUsecase) FindByRequestID(ctx context.Context, requestID string) ([]models.TransactionLog, error) {
	callerRequestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("transactionUsecase.FindByRequestID called",
		zap.String(constvars.LoggingRequestIDKey, callerRequestID),
		zap.String("target_request_id", requestID),
	)

	logs, err := uc.TransactionLogRepository.FindByRequestID(ctx, requestID)
	if err != nil {
		uc.Log.Error("transactionUsecase.FindByRequestID error fetching logs",
			zap.String(constvars.LoggingRequestIDKey, callerRequestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("transactionUsecase.FindByRequestID succeeded",
		zap.String(constvars.LoggingRequestIDKey, callerRequestID),
		zap.Int("log_count", len(logs)),
	)
	return logs, nil
}

func (uc *transactionUsecase) FindRecent(ctx context.Context, limit int64) ([]models.TransactionLog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("transactionUsecase.FindRecent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("limit", limit),
	)

	logs, err := uc.TransactionLogRepository.FindRecent(ctx, limit)
	if err != nil {
		uc.Log.Error("transactionUsecase.FindRecent error fetching logs",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("transactionUsecase.FindRecent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("log_count", len(logs)),
	)
	return logs, nil
}

// GetRawTransaction fetches the archived interchange bytes recorded for a
// processed request.
func (uc *transactionUsecase) GetRawTransaction(ctx context.Context, requestID string) ([]byte, error) {
	callerRequestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("transactionUsecase.GetRawTransaction called",
		zap.String(constvars.LoggingRequestIDKey, callerRequestID),
		zap.String("target_request_id", requestID),
	)

	objectName, err := uc.findRawObjectName(ctx, requestID)
	if err != nil {
		uc.Log.Error("transactionUsecase.GetRawTransaction error resolving raw object",
			zap.String(constvars.LoggingRequestIDKey, callerRequestID),
			zap.Error(err),
		)
		return nil, err
	}

	raw, err := uc.ObjectStorage.GetRawTransaction(ctx, objectName)
	if err != nil {
		uc.Log.Error("transactionUsecase.GetRawTransaction error fetching raw object",
			zap.String(constvars.LoggingRequestIDKey, callerRequestID),
			zap.String("object_name", objectName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("transactionUsecase.GetRawTransaction succeeded",
		zap.String(constvars.LoggingRequestIDKey, callerRequestID),
		zap.String("object_name", objectName),
		zap.Int("payload_bytes", len(raw)),
	)
	return raw, nil
}

// GetRawTransactionURL returns a presigned download link for the archived
// interchange so operators can share it without proxying the bytes.
func (uc *transactionUsecase) GetRawTransactionURL(ctx context.Context, requestID string) (string, error) {
	callerRequestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("transactionUsecase.GetRawTransactionURL called",
		zap.String(constvars.LoggingRequestIDKey, callerRequestID),
		zap.String("target_request_id", requestID),
	)

	objectName, err := uc.findRawObjectName(ctx, requestID)
	if err != nil {
		uc.Log.Error("transactionUsecase.GetRawTransactionURL error resolving raw object",
			zap.String(constvars.LoggingRequestIDKey, callerRequestID),
			zap.Error(err),
		)
		return "", err
	}

	url, err := uc.ObjectStorage.GetObjectUrlWithExpiryTime(ctx, objectName, constvars.PresignedRawURLExpiry)
	if err != nil {
		uc.Log.Error("transactionUsecase.GetRawTransactionURL error presigning object",
			zap.String(constvars.LoggingRequestIDKey, callerRequestID),
			zap.String("object_name", objectName),
			zap.Error(err),
		)
		return "", err
	}

	uc.Log.Info("transactionUsecase.GetRawTransactionURL succeeded",
		zap.String(constvars.LoggingRequestIDKey, callerRequestID),
		zap.String("object_name", objectName),
	)
	return url, nil
}

func (uc *transactionUsecase) findRawObjectName(ctx context.Context, requestID string) (string, error) {
	logs, err := uc.TransactionLogRepository.FindByRequestID(ctx, requestID)
	if err != nil {
		return "", err
	}
	for _, log := range logs {
		if log.RawObjectName != "" {
			return log.RawObjectName, nil
		}
	}
	return "", exceptions.ErrTransactionNotFound(requestID)
}
