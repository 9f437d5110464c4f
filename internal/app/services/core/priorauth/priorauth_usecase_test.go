package priorauth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"claimsbridge-service/internal/app/config"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/dto/requests"
	"claimsbridge-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	data    map[string]string
	deleted []string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{data: map[string]string{}}
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
	published []models.TransactionEvent
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event models.TransactionEvent) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventPublisher) PublishToDeadLetter(ctx context.Context, event models.TransactionEvent) error {
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
	return f.logs, nil
}

func (f *fakeTransactionLogRepository) FindRecent(ctx context.Context, limit int64) ([]models.TransactionLog, error) {
	return f.logs, nil
}

func TestRecordDecisionUsecase(t *testing.T) {
	internalConfig := &config.InternalConfig{
		X12: config.X12{
			SenderID:   "CLAIMSBRIDGE",
			ReceiverID: "PARTNER01",
		},
	}
	redisRepo := newFakeRedisRepository()
	uc := NewPriorAuthUsecase(redisRepo, newFakeObjectStorage(), &fakeEventPublisher{}, &fakeTransactionLogRepository{}, internalConfig, zap.NewNop())
	ctx := context.Background()

	canonical, err := Decode278Request(sample278Request())
	require.NoError(t, err)
	canonical.Envelope.SenderID = ""
	canonical.Envelope.ReceiverID = ""

	received := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	timeline := StartTimeline(canonical, received)

	requestKey := fmt.Sprintf(constvars.RedisKeyPriorAuthRequest, canonical.TraceNumber)
	timelineKey := fmt.Sprintf(constvars.RedisKeyPriorAuthTimeline, canonical.TraceNumber)
	require.NoError(t, redisRepo.Set(ctx, requestKey, canonical, constvars.RedisTTLPriorAuth))
	require.NoError(t, redisRepo.Set(ctx, timelineKey, timeline, constvars.RedisTTLPriorAuth))

	result, err := uc.RecordDecision(ctx, &requests.PriorAuthDecisionRequest{
		TraceNumber: canonical.TraceNumber,
		Response: fhir_dto.ClaimResponse{
			Outcome:    "complete",
			PreAuthRef: "AUTH001",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, result.Raw, "AUTH001")
	require.NotNil(t, result.Timeline)
	require.NotNil(t, result.Timeline.DecidedAt)

	// A blank cached envelope identity falls back to the configured IDs.
	assert.Contains(t, result.Raw, "CLAIMSBRIDGE")
	assert.Contains(t, result.Raw, "PARTNER01")

	// The recorded decision retires the pending-request cache entries.
	assert.Contains(t, redisRepo.deleted, requestKey)
	assert.Contains(t, redisRepo.deleted, timelineKey)
	assert.NotContains(t, redisRepo.data, requestKey)
	assert.NotContains(t, redisRepo.data, timelineKey)
}
