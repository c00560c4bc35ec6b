package domain

import "time"

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is the durable record of a customer-facing message. The core
// only writes the row (in the same transaction as the status change that
// caused it); the notify worker picks it up and hands it to the external push
// transport.
type Notification struct {
	ID        string             `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID  string             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID    string             `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderID   string             `gorm:"type:uuid" json:"order_id,omitempty"`
	Title     string             `gorm:"type:text;not null" json:"title"`
	Body      string             `gorm:"type:text;not null" json:"body"`
	Status    NotificationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	SentAt    *time.Time         `gorm:"type:timestamp with time zone" json:"sent_at,omitempty"`
	CreatedAt time.Time          `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time          `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
