package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/access"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
)

//go:generate mockery --name SQSService --output ../mocks
type SQSService interface {
	SendNotifyMessage(ctx context.Context, notification *domain.Notification) error
	SendIndexMessage(ctx context.Context, entries ...domain.AuditLogEntry) error
	SendArchiveMessage(ctx context.Context, tenantID string, beforeDate time.Time) error
	SendCleanupMessage(ctx context.Context, tenantID string, beforeDate time.Time) error
}

// newAuditEntry builds an audit record for a mutation of the given tenant's
// data. The actor comes from the request context; a missing actor (bootstrap
// paths, workers) leaves the field empty rather than failing the mutation.
func newAuditEntry(ctx context.Context, tenantID string, action domain.ActionType, table, recordID string, before, after json.RawMessage) *domain.AuditLogEntry {
	actorID, _ := utils.GetUserIDFromContext(ctx)

	return &domain.AuditLogEntry{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		ActorID:     actorID,
		Action:      action,
		TableName_:  table,
		RecordID:    recordID,
		BeforeState: before,
		AfterState:  after,
		Timestamp:   time.Now().UTC(),
	}
}

// AuditService is the read side of the audit trail plus the retention entry
// points. Writes happen inside the mutating services' transactions via
// newAuditEntry; this service never inserts entries itself.
type AuditService struct {
	repo   repository.Repository
	sqsSvc SQSService
}

func NewAuditService(repo repository.Repository, sqsSvc SQSService) *AuditService {
	return &AuditService{
		repo:   repo,
		sqsSvc: sqsSvc,
	}
}

func (s *AuditService) GetByID(ctx context.Context, tenantID, id string) (*domain.AuditLogEntry, error) {
	if err := s.requireAuditRead(ctx, tenantID); err != nil {
		return nil, err
	}

	entry, err := s.repo.AuditLog().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get audit entry: %w", err)
	}

	// An entry from another tenant does not exist as far as this caller is
	// concerned.
	if entry.TenantID != tenantID {
		return nil, ErrNotFound
	}

	return entry, nil
}

func (s *AuditService) List(ctx context.Context, filter *domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	if filter.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant_id is required", ErrValidation)
	}
	if err := s.requireAuditRead(ctx, filter.TenantID); err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	filter.Limit = filter.PageSize
	filter.Offset = (filter.Page - 1) * filter.PageSize

	// Field filters go through the search index; plain paginated reads stay on
	// the primary store.
	if s.hasSearchCriteria(filter) {
		entries, err := s.repo.OpenSearch().Search(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to search audit entries: %w", err)
		}
		return entries, nil
	}

	entries, err := s.repo.AuditLog().List(ctx, *filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// requireAuditRead restricts the audit trail to tenant admins.
func (s *AuditService) requireAuditRead(ctx context.Context, tenantID string) error {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return ErrPermissionDenied
	}
	checker := access.NewChecker(s.repo)
	if !checker.Can(ctx, tenantID, actorID, domain.CapReadAuditLog) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *AuditService) hasSearchCriteria(filter *domain.AuditLogFilter) bool {
	return filter.ActorID != "" ||
		filter.Action != "" ||
		filter.Table != "" ||
		filter.RecordID != "" ||
		!filter.StartTime.IsZero() ||
		!filter.EndTime.IsZero()
}

// RequestArchive asks the archive worker to move entries older than
// beforeDate to cold storage.
func (s *AuditService) RequestArchive(ctx context.Context, tenantID string, beforeDate time.Time) error {
	if err := s.sqsSvc.SendArchiveMessage(ctx, tenantID, beforeDate); err != nil {
		return fmt.Errorf("failed to enqueue archive request: %w", err)
	}
	return nil
}

// RequestCleanup asks the cleanup worker to delete entries older than
// beforeDate. Archive first; cleanup is destructive.
func (s *AuditService) RequestCleanup(ctx context.Context, tenantID string, beforeDate time.Time) error {
	if err := s.sqsSvc.SendCleanupMessage(ctx, tenantID, beforeDate); err != nil {
		return fmt.Errorf("failed to enqueue cleanup request: %w", err)
	}
	return nil
}
