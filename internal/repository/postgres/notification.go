package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type NotificationRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewNotificationRepository(writerDB, readerDB *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	return r.writerDB.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	var notification domain.Notification
	if err := r.readerDB.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  domain.NotificationSent,
			"sent_at": at,
		}).Error
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id string) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("status", domain.NotificationFailed).Error
}
