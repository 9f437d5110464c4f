package contracts

import (
	"context"

	"claimsbridge-service/internal/app/models"
)

// EventPublisher pushes decoded-transaction events to the downstream queue.
// Messages that exhaust their retries move to the dead-letter queue.
type EventPublisher interface {
	Publish(ctx context.Context, event models.TransactionEvent) error
	PublishToDeadLetter(ctx context.Context, event models.TransactionEvent) error
}
