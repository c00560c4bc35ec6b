package worker

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/service/queue"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

// ArchiveWorker moves aged audit entries to S3 before the cleanup worker is
// allowed to delete them. Archive succeeds first, then the cleanup message is
// enqueued; a failed upload leaves the rows in place.
type ArchiveWorker struct {
	sqsService   *queue.SQSService
	repository   repository.PostgresRepository
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
	s3Client     *s3.Client
	s3Config     *config.S3Config
}

func NewArchiveWorker(
	sqsService *queue.SQSService,
	repository repository.PostgresRepository,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
	s3Client *s3.Client,
	s3Config *config.S3Config,
) *ArchiveWorker {
	return &ArchiveWorker{
		sqsService:   sqsService,
		repository:   repository,
		logger:       logger,
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10,
		waitTime:     20,
		shutdownChan: make(chan struct{}),
		s3Client:     s3Client,
		s3Config:     s3Config,
	}
}

func (w *ArchiveWorker) Start() {
	w.logger.Info("Starting Archive workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *ArchiveWorker) Stop() {
	w.logger.Info("Stopping Archive workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All Archive workers stopped")
}

func (w *ArchiveWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Archive Worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Archive Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(context.Background()); err != nil {
				w.logger.Errorf("Archive Worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

func (w *ArchiveWorker) processMessages(ctx context.Context) error {
	config := config.DefaultSQSConfig()
	archiveQueueURL := config.ArchiveQueueURL

	messages, err := w.sqsService.ReceiveMessages(ctx, archiveQueueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if msg.Message.Type == queue.MessageTypeArchive {
			if err := w.processArchiveMessage(ctx, msg.Message); err != nil {
				w.logger.Errorf("Failed to process archive message: %v", err)
				continue
			}

			// Only delete the message if processing was successful
			if err := w.sqsService.DeleteMessage(ctx, archiveQueueURL, msg.ReceiptHandle); err != nil {
				w.logger.Errorf("Failed to delete message: %v", err)
			}
		}
	}

	return nil
}

func (w *ArchiveWorker) processArchiveMessage(ctx context.Context, msg queue.Message) error {
	w.logger.Infof("Processing archive message for tenant %s (before: %s)",
		msg.TenantID, msg.BeforeDate.Format(time.RFC3339))

	entries, err := w.repository.AuditLog().ListBeforeDate(ctx, msg.TenantID, msg.BeforeDate)
	if err != nil {
		return fmt.Errorf("failed to fetch entries for archival for tenant %s: %w", msg.TenantID, err)
	}

	if len(entries) == 0 {
		w.logger.Infof("No entries found for archival for tenant %s before %s", msg.TenantID, msg.BeforeDate.Format(time.RFC3339))
		// Still enqueue cleanup message even if no entries found
		return w.enqueueCleanupMessage(ctx, msg.TenantID, msg.BeforeDate)
	}

	w.logger.Infof("Found %d entries to archive for tenant %s before %s", len(entries), msg.TenantID, msg.BeforeDate.Format(time.RFC3339))

	if err := w.archiveEntriesToS3(ctx, msg.TenantID, entries, msg.BeforeDate); err != nil {
		return fmt.Errorf("failed to archive entries for tenant %s: %w", msg.TenantID, err)
	}

	w.logger.Infof("Successfully archived %d entries for tenant %s to S3", len(entries), msg.TenantID)

	// Enqueue cleanup message after successful archival
	return w.enqueueCleanupMessage(ctx, msg.TenantID, msg.BeforeDate)
}

func (w *ArchiveWorker) archiveEntriesToS3(ctx context.Context, tenantID string, entries []domain.AuditLogEntry, beforeDate time.Time) error {
	s3Key := fmt.Sprintf("audit-trail/%s/audit_entries_%s_before_%s.json.gz",
		tenantID,
		tenantID,
		beforeDate.Format("2006-01-02_15-04-05"))

	archiveData := map[string]interface{}{
		"tenant_id":   tenantID,
		"before_date": beforeDate,
		"archived_at": time.Now(),
		"entry_count": len(entries),
		"entries":     entries,
	}

	jsonData, err := json.Marshal(archiveData)
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(jsonData); err != nil {
		return fmt.Errorf("failed to compress archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	contentType := "application/gzip"
	_, err = w.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &w.s3Config.BucketName,
		Key:         &s3Key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: &contentType,
		Metadata: map[string]string{
			"tenant-id":   tenantID,
			"archived-at": time.Now().Format(time.RFC3339),
			"before-date": beforeDate.Format(time.RFC3339),
		},
	})

	if err != nil {
		return fmt.Errorf("failed to upload archive to S3: %w", err)
	}

	w.logger.Infof("Successfully uploaded archive to S3: s3://%s/%s", w.s3Config.BucketName, s3Key)
	return nil
}

func (w *ArchiveWorker) enqueueCleanupMessage(ctx context.Context, tenantID string, beforeDate time.Time) error {
	if err := w.sqsService.SendCleanupMessage(ctx, tenantID, beforeDate); err != nil {
		return fmt.Errorf("failed to enqueue cleanup message: %w", err)
	}

	w.logger.Infof("Successfully enqueued cleanup message for tenant %s", tenantID)
	return nil
}
