package transactions

import (
	"context"
	"time"

	"claimsbridge-service/internal/app/contracts"
	"claimsbridge-service/internal/app/models"
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionLogMongoRepository struct {
	Collection *mongo.Collection
}

func NewTransactionLogMongoRepository(db *mongo.Client, dbName string) contracts.TransactionLogRepository {
	return &TransactionLogMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTransactionLogs),
	}
}

func (repo *TransactionLogMongoRepository) Insert(ctx context.Context, log *models.TransactionLog) error {
	if log.ID == "" {
		log.ID = primitive.NewObjectID().Hex()
	}
	if log.ProcessedAt.IsZero() {
		log.ProcessedAt = time.Now().UTC()
	}
	if _, err := repo.Collection.InsertOne(ctx, log); err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *TransactionLogMongoRepository) FindByRequestID(ctx context.Context, requestID string) ([]models.TransactionLog, error) {
	var logs []models.TransactionLog
	cursor, err := repo.Collection.Find(ctx, bson.M{"requestId": requestID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return logs, nil
}

func (repo *TransactionLogMongoRepository) FindRecent(ctx context.Context, limit int64) ([]models.TransactionLog, error) {
	var logs []models.TransactionLog
	findOptions := options.Find().
		SetSort(bson.D{{Key: "processedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return logs, nil
}
