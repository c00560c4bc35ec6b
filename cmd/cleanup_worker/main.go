package main

import (
	"context"
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

// Runs the retention pipeline: the archive worker copies aged audit entries
// to S3 and enqueues cleanup, the cleanup worker deletes what was archived
// and purges expired nonces and rate-limit windows.
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

	appLogger.Info("Database connection established for cleanup worker")

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	appLogger.Info("SQS connection established for cleanup worker")

	// Initialize S3 for the archive side
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}

	archiveWorker := worker.NewArchiveWorker(
		sqsService,
		repo,
		appLogger,
		1,             // worker goroutines
		5*time.Second, // Poll every 5 seconds
		s3Client,
		s3Config,
	)

	cleanupWorker := worker.NewCleanupWorker(
		sqsService,
		repo,
		appLogger,
		1,              // worker goroutines
		30*time.Second, // Poll every 30 seconds
	)

	// Start the workers
	archiveWorker.Start()
	cleanupWorker.Start()
	appLogger.Info("Archive and cleanup workers started")

	// Wait for interrupt signal to gracefully shutdown the workers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Stop the workers
	appLogger.Info("Shutting down workers...")
	archiveWorker.Stop()
	cleanupWorker.Stop()
	appLogger.Info("Workers stopped")
	appLogger.Sync()
}
