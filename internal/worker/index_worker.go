package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/repository/opensearch"
	"github.com/filippocalippo/vittoria-order-api/internal/service/queue"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

// IndexWorker mirrors committed audit entries into the OpenSearch index. The
// primary store already has the entry by the time the message exists, so a
// crash here loses nothing: the message is redelivered and indexing is
// idempotent by document id.
type IndexWorker struct {
	sqsService   *queue.SQSService
	osRepository opensearch.Repository
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewIndexWorker(
	sqsService *queue.SQSService,
	osRepository opensearch.Repository,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *IndexWorker {
	return &IndexWorker{
		sqsService:   sqsService,
		osRepository: osRepository,
		logger:       logger,
		workerCount:  workerCount,
		pollInterval: pollInterval,
		maxMessages:  10, // Process up to 10 messages at a time
		waitTime:     20, // Long polling: wait up to 20 seconds for messages
		shutdownChan: make(chan struct{}),
	}
}

func (w *IndexWorker) Start() {
	w.logger.Info("Starting Index workers...")

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

func (w *IndexWorker) Stop() {
	w.logger.Info("Stopping Index workers...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("All Index workers stopped")
}

func (w *IndexWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Index Worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Infof("Index Worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if err := w.processMessages(context.Background()); err != nil {
				w.logger.Errorf("Index Worker %d failed to process messages: %v", workerID, err)
			}
		}
	}
}

func (w *IndexWorker) processMessages(ctx context.Context) error {
	config := config.DefaultSQSConfig()
	indexQueueURL := config.IndexQueueURL

	messages, err := w.sqsService.ReceiveMessages(ctx, indexQueueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessage(ctx, msg.Message); err != nil {
			w.logger.Errorf("Failed to process message: %v", err)
			continue
		}

		// Only delete the message if processing was successful
		if err := w.sqsService.DeleteMessage(ctx, indexQueueURL, msg.ReceiptHandle); err != nil {
			w.logger.Errorf("Failed to delete message: %v", err)
		}
	}

	return nil
}

func (w *IndexWorker) processMessage(ctx context.Context, msg queue.Message) error {
	w.logger.Infof("Processing message of type %s for tenant %s", msg.Type, msg.TenantID)

	switch msg.Type {
	case queue.MessageTypeIndex:
		if len(msg.Entries) == 0 {
			return fmt.Errorf("empty entries array for INDEX message")
		}
		if len(msg.Entries) == 1 {
			return w.osRepository.Index(ctx, &msg.Entries[0])
		}
		return w.osRepository.BulkIndex(ctx, msg.Entries)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
