package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/repository/postgres"
	"github.com/kingrain94/school-tenancy-api/internal/service/queue"
	"github.com/kingrain94/school-tenancy-api/internal/worker"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appEnv := os.Getenv("APP_ENV")
	appLogger := logger.NewLogger(appEnv)
	ctx := context.Background()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		appLogger.Fatal("Failed to load database config", err)
	}
	dbConnections, err := config.NewDatabaseConnections(dbConfig, appEnv)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()
	repo := postgres.NewPostgresRepository(dbConnections)

	s3Config, err := config.LoadS3Config()
	if err != nil {
		appLogger.Fatal("Failed to load S3 config", err)
	}
	s3Client, err := s3Config.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}

	sqsConfig, err := config.LoadSQSConfig()
	if err != nil {
		appLogger.Fatal("Failed to load SQS config", err)
	}
	sqsClient, err := sqsConfig.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	archiveWorker := worker.NewArchiveWorker(
		sqsService,
		sqsService.ArchiveQueueURL(),
		repo.SecurityEvent(),
		s3Client,
		s3Config.BucketName,
		appLogger,
		1,
		30*time.Second,
	)
	archiveWorker.Start()
	appLogger.Info("Archive worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	archiveWorker.Stop()
	appLogger.Sync()
}
