package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/repository/postgres"
	"github.com/filippocalippo/vittoria-order-api/internal/service/queue"
	"github.com/filippocalippo/vittoria-order-api/internal/worker"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	// Initialize database
	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()
	repo := postgres.NewPostgresRepository(dbConnections)

	appLogger.Info("Database connection established for notify worker")

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	appLogger.Info("SQS connection established for notify worker")

	notifyWorker := worker.NewNotifyWorker(
		sqsService,
		repo,
		appLogger,
		1,             // worker goroutines
		5*time.Second, // Poll every 5 seconds
	)

	// Start the worker
	notifyWorker.Start()
	appLogger.Info("Notify worker started")

	// Wait for interrupt signal to gracefully shutdown the worker
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Stop the worker
	appLogger.Info("Shutting down worker...")
	notifyWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
