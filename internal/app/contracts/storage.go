package contracts

import (
	"context"
	"time"
)

// ObjectStorage archives raw EDI interchanges so every decoded transaction
// can be traced back to the exact bytes a trading partner sent.
type ObjectStorage interface {
	PutRawTransaction(ctx context.Context, objectName string, payload []byte, contentType string) (string, error)
	GetRawTransaction(ctx context.Context, objectName string) ([]byte, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error)
}
