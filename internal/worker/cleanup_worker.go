package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/service/queue"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

// rateLimitRetention is how long closed rate-limit windows are kept before
// purging. They are never read again after the window ends; a day's slack
// keeps them inspectable for support.
const rateLimitRetention = 24 * time.Hour

// CleanupWorker handles destructive maintenance: audit entry deletion driven
// by cleanup messages (always preceded by an archive), plus the periodic
// purges of expired nonces and closed rate-limit windows.
type CleanupWorker struct {
	sqsService   *queue.SQSService
	repository   repository.PostgresRepository
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewCleanupWorker(
	sqsService *queue.SQSService,
	repository repository.PostgresRepository,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *CleanupWorker {
	return &CleanupWorker{
		sqsService:   sqsService,
		repository:   repository,
		logger:       logger,
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10,
		waitTime:     20,
		shutdownChan: make(chan struct{}),
	}
}

func (w *CleanupWorker) Start() {
	w.logger.Info("Starting Cleanup workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *CleanupWorker) Stop() {
	w.logger.Info("Stopping Cleanup workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All Cleanup workers stopped")
}

func (w *CleanupWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Cleanup Worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Cleanup Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(context.Background()); err != nil {
				w.logger.Errorf("Cleanup Worker %d failed to process messages: %v", workerID, err)
			}
			w.runPeriodicPurges(context.Background())
		}
	}
}

func (w *CleanupWorker) processMessages(ctx context.Context) error {
	config := config.DefaultSQSConfig()
	cleanupQueueURL := config.CleanupQueueURL

	messages, err := w.sqsService.ReceiveMessages(ctx, cleanupQueueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if msg.Message.Type == queue.MessageTypeCleanup {
			if err := w.processCleanupMessage(ctx, msg.Message); err != nil {
				w.logger.Errorf("Failed to process cleanup message: %v", err)
				continue
			}

			// Only delete the message if processing was successful
			if err := w.sqsService.DeleteMessage(ctx, cleanupQueueURL, msg.ReceiptHandle); err != nil {
				w.logger.Errorf("Failed to delete message: %v", err)
			}
		}
	}

	return nil
}

func (w *CleanupWorker) processCleanupMessage(ctx context.Context, msg queue.Message) error {
	w.logger.Infof("Processing cleanup message for tenant %s (before: %s)",
		msg.TenantID, msg.BeforeDate.Format(time.RFC3339))

	deletedCount, err := w.repository.AuditLog().DeleteBeforeDate(ctx, msg.TenantID, msg.BeforeDate)
	if err != nil {
		return fmt.Errorf("failed to delete audit entries for tenant %s: %w", msg.TenantID, err)
	}

	w.logger.Infof("Successfully deleted %d audit entries for tenant %s (before: %s)",
		deletedCount, msg.TenantID, msg.BeforeDate.Format(time.RFC3339))

	return nil
}

// runPeriodicPurges drops rows that can never matter again. Nonce purging is
// strictly expiry-based: an unexpired nonce still guards its replay window.
func (w *CleanupWorker) runPeriodicPurges(ctx context.Context) {
	now := time.Now()

	if deleted, err := w.repository.Nonce().PurgeExpired(ctx, now); err != nil {
		w.logger.Errorf("Failed to purge expired nonces: %v", err)
	} else if deleted > 0 {
		w.logger.Infof("Purged %d expired nonces", deleted)
	}

	if deleted, err := w.repository.RateLimit().PurgeBefore(ctx, now.Add(-rateLimitRetention)); err != nil {
		w.logger.Errorf("Failed to purge rate limit windows: %v", err)
	} else if deleted > 0 {
		w.logger.Infof("Purged %d closed rate limit windows", deleted)
	}
}
