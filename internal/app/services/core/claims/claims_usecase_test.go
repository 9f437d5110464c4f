package claims

import (
	"context"
	"testing"
	"time"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	data    map[string]string
	counts  map[string]int64
	deleted []string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{data: map[string]string{}, counts: map[string]int64{}}
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.data, key)
	return nil
}

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(payload)
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeRedisRepository) Increment(ctx context.Context, key string) error {
	f.counts[key]++
	return nil
}

func (f *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, exists := f.data[key]; exists {
		return false, nil
	}
	return true, f.Set(ctx, key, value, exp)
}

type fakeObjectStorage struct {
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}}
}

func (f *fakeObjectStorage) PutRawTransaction(ctx context.Context, objectName string, payload []byte, contentType string) (string, error) {
	f.objects[objectName] = payload
	return objectName, nil
}

func (f *fakeObjectStorage) GetRawTransaction(ctx context.Context, objectName string) ([]byte, error) {
	return f.objects[objectName], nil
}

func (f *fakeObjectStorage) GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error) {
	return "https://storage.local/" + objectName, nil
}

type fakeEventPublisher struct {
	published  []models.TransactionEvent
	deadLetter []models.TransactionEvent
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event models.TransactionEvent) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventPublisher) PublishToDeadLetter(ctx context.Context, event models.TransactionEvent) error {
	f.deadLetter = append(f.deadLetter, event)
	return nil
}

type fakeTransactionLogRepository struct {
	logs []models.TransactionLog
}

func (f *fakeTransactionLogRepository) Insert(ctx context.Context, log *models.TransactionLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeTransactionLogRepository) FindByRequestID(ctx context.Context, requestID string) ([]models.TransactionLog, error) {
	matched := make([]models.TransactionLog, 0)
	for _, log := range f.logs {
		if log.RequestID == requestID {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

func (f *fakeTransactionLogRepository) FindRecent(ctx context.Context, limit int64) ([]models.TransactionLog, error) {
	return f.logs, nil
}

func TestDecodeClaim(t *testing.T) {
	redisRepo := newFakeRedisRepository()
	publisher := &fakeEventPublisher{}
	translog := &fakeTransactionLogRepository{}
	uc := NewClaimUsecase(redisRepo, newFakeObjectStorage(), publisher, translog, zap.NewNop())
	ctx := context.Background()

	t.Run("FirstInterchangeAccepted", func(t *testing.T) {
		result, err := uc.DecodeClaim(ctx, []byte(sample837()))
		require.NoError(t, err)

		require.NotNil(t, result.Claim)
		require.Len(t, publisher.published, 1)
		require.Len(t, translog.logs, 1)
		assert.True(t, translog.logs[0].Succeeded)
		assert.NotEmpty(t, translog.logs[0].RawObjectName)
	})

	t.Run("ReplayedInterchangeRejected", func(t *testing.T) {
		_, err := uc.DecodeClaim(ctx, []byte(sample837()))

		var custom *exceptions.CustomError
		require.ErrorAs(t, err, &custom)
		assert.Equal(t, constvars.StatusConflict, custom.StatusCode)
		assert.EqualValues(t, 1, redisRepo.counts[constvars.RedisKeyClaimDuplicateCount])

		// The rejection is recorded as a failed transaction.
		require.Len(t, translog.logs, 2)
		assert.False(t, translog.logs[1].Succeeded)
	})
}
