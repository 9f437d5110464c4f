package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimsbridge-service/internal/app/config"
	"claimsbridge-service/internal/app/delivery/http/middlewares"
	"claimsbridge-service/internal/app/delivery/http/routers"
	"claimsbridge-service/internal/app/drivers/database"
	"claimsbridge-service/internal/app/drivers/logger"
	"claimsbridge-service/internal/app/drivers/messaging"
	"claimsbridge-service/internal/app/drivers/storage"
	"claimsbridge-service/internal/app/services/core/claims"
	"claimsbridge-service/internal/app/services/core/compliance"
	"claimsbridge-service/internal/app/services/core/eligibility"
	"claimsbridge-service/internal/app/services/core/priorauth"
	"claimsbridge-service/internal/app/services/core/remittance"
	"claimsbridge-service/internal/app/services/core/transactions"
	"claimsbridge-service/internal/app/services/shared/eventqueue"
	sharedredis "claimsbridge-service/internal/app/services/shared/redis"
	sharedstorage "claimsbridge-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	objectStorage, err := sharedstorage.NewMinioObjectStorage(
		context.Background(),
		minioClient,
		driverConfig.Minio.BucketName,
	)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	eventPublisher, err := eventqueue.NewService(
		rabbitConn,
		zapLogger,
		internalConfig.Queue.TransactionEventQueue,
		internalConfig.Queue.DeadLetterQueue,
	)
	if err != nil {
		log.Fatalf("Failed to initialize event queue: %v", err)
	}

	redisRepository := sharedredis.NewRedisRepository(redisClient)
	transactionLogRepository := transactions.NewTransactionLogMongoRepository(
		mongoClient,
		driverConfig.MongoDB.DbName,
	)

	appMiddlewares := middlewares.NewMiddlewares(zapLogger, internalConfig)

	eligibilityUsecase := eligibility.NewEligibilityUsecase(redisRepository, objectStorage, eventPublisher, transactionLogRepository, internalConfig, zapLogger)
	eligibilityController := eligibility.NewEligibilityController(zapLogger, eligibilityUsecase)

	claimUsecase := claims.NewClaimUsecase(redisRepository, objectStorage, eventPublisher, transactionLogRepository, zapLogger)
	claimController := claims.NewClaimController(zapLogger, claimUsecase)

	remittanceUsecase := remittance.NewRemittanceUsecase(redisRepository, objectStorage, eventPublisher, transactionLogRepository, zapLogger)
	remittanceController := remittance.NewRemittanceController(zapLogger, remittanceUsecase)

	priorAuthUsecase := priorauth.NewPriorAuthUsecase(redisRepository, objectStorage, eventPublisher, transactionLogRepository, internalConfig, zapLogger)
	priorAuthController := priorauth.NewPriorAuthController(zapLogger, priorAuthUsecase)

	complianceUsecase := compliance.NewComplianceUsecase(zapLogger)
	complianceController := compliance.NewComplianceController(zapLogger, complianceUsecase)

	transactionUsecase := transactions.NewTransactionUsecase(transactionLogRepository, objectStorage, zapLogger)
	transactionController := transactions.NewTransactionController(zapLogger, transactionUsecase)

	routers.SetupRoutes(
		chiRouter,
		internalConfig,
		appMiddlewares,
		eligibilityController,
		claimController,
		remittanceController,
		priorAuthController,
		complianceController,
		transactionController,
	)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to close connections cleanly: %v", err)
	}

	log.Println("Server exiting")
}
