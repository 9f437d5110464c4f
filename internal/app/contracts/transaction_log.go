package contracts

import (
	"context"

	"claimsbridge-service/internal/app/models"
)

type TransactionLogRepository interface {
	Insert(ctx context.Context, log *models.TransactionLog) error
	FindByRequestID(ctx context.Context, requestID string) ([]models.TransactionLog, error)
	FindRecent(ctx context.Context, limit int64) ([]models.TransactionLog, error)
}
