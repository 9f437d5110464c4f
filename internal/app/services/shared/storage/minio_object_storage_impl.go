package storage

import (
	"bytes"
	"context"
	"io"
	"time"

	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioObjectStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

// NewMinioObjectStorage ensures the raw-transaction bucket exists and returns
// the archive backed by it.
func NewMinioObjectStorage(ctx context.Context, minioClient *minio.Client, bucketName string) (contracts.ObjectStorage, error) {
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, exceptions.ErrStoragePutObject(err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, exceptions.ErrStoragePutObject(err)
		}
	}
	return &minioObjectStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}, nil
}

func (m *minioObjectStorage) PutRawTransaction(ctx context.Context, objectName string, payload []byte, contentType string) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(payload),
		int64(len(payload)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrStoragePutObject(err)
	}
	return objectName, nil
}

func (m *minioObjectStorage) GetRawTransaction(ctx context.Context, objectName string) ([]byte, error) {
	object, err := m.MinioClient.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrStorageGetObject(err)
	}
	defer object.Close()

	payload, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrStorageGetObject(err)
	}
	return payload, nil
}

func (m *minioObjectStorage) GetObjectUrlWithExpiryTime(ctx context.Context, objectName string, expiryTime time.Duration) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, m.BucketName, objectName, expiryTime, nil)
	if err != nil {
		return "", exceptions.ErrStorageGetObject(err)
	}
	return presignedURL.String(), nil
}
