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
	"github.com/kingrain94/school-tenancy-api/internal/repository/opensearch"
	"github.com/kingrain94/school-tenancy-api/internal/service/queue"
	"github.com/kingrain94/school-tenancy-api/internal/worker"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	osConfig, err := config.LoadOpenSearchConfig()
	if err != nil {
		appLogger.Fatal("Failed to load OpenSearch config", err)
	}
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}
	osRepo := opensearch.NewRepository(osClient, osConfig)
	appLogger.Info("OpenSearch connection established for index worker")

	sqsConfig, err := config.LoadSQSConfig()
	if err != nil {
		appLogger.Fatal("Failed to load SQS config", err)
	}
	sqsClient, err := sqsConfig.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)
	appLogger.Info("SQS connection established for index worker")

	indexWorker := worker.NewIndexWorker(
		sqsService,
		sqsService.IndexQueueURL(),
		osRepo,
		appLogger,
		3,
		5*time.Second,
	)
	indexWorker.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	indexWorker.Stop()
	appLogger.Sync()
}
