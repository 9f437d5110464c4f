package transactions

import (
	"context"

	"claimsbridge-service/internal/app/models"
)

type TransactionUsecase interface {
	FindByRequestID(ctx context.Context, requestID string) ([]models.TransactionLog, error)
	FindRecent(ctx context.Context, limit int64) ([]models.TransactionLog, error)
	GetRawTransaction(ctx context.Context, requestID string) ([]byte, error)
	GetRawTransactionURL(ctx context.Context, requestID string) (string, error)
}
