package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type AuditLogRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewAuditLogRepository(writerDB, readerDB *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	return r.writerDB.WithContext(ctx).Create(entry).Error
}

func (r *AuditLogRepository) GetByID(ctx context.Context, id string) (*domain.AuditLogEntry, error) {
	var entry domain.AuditLogEntry
	if err := r.readerDB.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *AuditLogRepository) List(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	var entries []domain.AuditLogEntry

	db := r.readerDB.WithContext(ctx)
	if filter.TenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	db = db.Where("tenant_id = ?", filter.TenantID)

	if filter.ActorID != "" {
		db = db.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		db = db.Where("action = ?", filter.Action)
	}
	if filter.Table != "" {
		db = db.Where("table_name = ?", filter.Table)
	}
	if filter.RecordID != "" {
		db = db.Where("record_id = ?", filter.RecordID)
	}
	if !filter.StartTime.IsZero() {
		db = db.Where("timestamp >= ?", filter.StartTime)
	}
	if !filter.EndTime.IsZero() {
		db = db.Where("timestamp <= ?", filter.EndTime)
	}

	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	db = db.Order("timestamp DESC")

	if err := db.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *AuditLogRepository) ListBeforeDate(ctx context.Context, tenantID string, beforeDate time.Time) ([]domain.AuditLogEntry, error) {
	var entries []domain.AuditLogEntry
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ? AND timestamp < ?", tenantID, beforeDate).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteBeforeDate is reserved for the archive pipeline; the API surface never
// deletes audit entries.
func (r *AuditLogRepository) DeleteBeforeDate(ctx context.Context, tenantID string, beforeDate time.Time) (int64, error) {
	result := r.writerDB.WithContext(ctx).
		Where("tenant_id = ? AND timestamp < ?", tenantID, beforeDate).
		Delete(&domain.AuditLogEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
