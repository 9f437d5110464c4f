package transactions

import (
	"context"
	"testing"
	"time"

	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type fakeObjectStorage struct {
	objects map[string][]byte
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

func TestTransactionUsecaseRawRetrieval(t *testing.T) {
	repo := &fakeTransactionLogRepository{
		logs: []models.TransactionLog{
			{RequestID: "req-1", TransactionSet: constvars.TransactionSet837, RawObjectName: "raw/837/req-1.edi"},
			{RequestID: "req-2", TransactionSet: constvars.TransactionSet270},
		},
	}
	storage := &fakeObjectStorage{
		objects: map[string][]byte{
			"raw/837/req-1.edi": []byte("ISA*00*"),
		},
	}
	uc := NewTransactionUsecase(repo, storage, zap.NewNop())
	ctx := context.Background()

	t.Run("DownloadArchivedInterchange", func(t *testing.T) {
		raw, err := uc.GetRawTransaction(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("ISA*00*"), raw)
	})

	t.Run("PresignArchivedInterchange", func(t *testing.T) {
		url, err := uc.GetRawTransactionURL(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, "https://storage.local/raw/837/req-1.edi", url)
	})

	t.Run("NoArchivedObject", func(t *testing.T) {
		_, err := uc.GetRawTransaction(ctx, "req-2")

		var custom *exceptions.CustomError
		require.ErrorAs(t, err, &custom)
		assert.Equal(t, constvars.StatusNotFound, custom.StatusCode)
	})

	t.Run("UnknownRequestID", func(t *testing.T) {
		_, err := uc.GetRawTransactionURL(ctx, "missing")

		var custom *exceptions.CustomError
		require.ErrorAs(t, err, &custom)
		assert.Equal(t, constvars.StatusNotFound, custom.StatusCode)
	})
}
