package domain

import (
	"encoding/json"
	"time"
)

type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionUpdate ActionType = "UPDATE"
	ActionDelete ActionType = "DELETE"
)

// AuditLogEntry is the append-only change record for sensitive entities.
// Entries are written inside the same transaction as the mutation they
// describe and are never updated or deleted by normal operations.
type AuditLogEntry struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID    string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ActorID     string          `gorm:"type:uuid" json:"actor_id"`
	Action      ActionType      `gorm:"type:text;not null" json:"action"`
	TableName_  string          `gorm:"column:table_name;type:text;not null" json:"table_name"`
	RecordID    string          `gorm:"type:text;not null" json:"record_id"`
	BeforeState json.RawMessage `gorm:"type:jsonb" json:"before_state,omitempty"`
	AfterState  json.RawMessage `gorm:"type:jsonb" json:"after_state,omitempty"`
	Timestamp   time.Time       `gorm:"type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"timestamp"`
	CreatedAt   time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	Tenant      *Tenant         `gorm:"foreignKey:TenantID" json:"-"`
}

func (AuditLogEntry) TableName() string {
	return "audit_log_entries"
}

type AuditLogFilter struct {
	TenantID  string     `json:"tenant_id"`
	ActorID   string     `json:"actor_id"`
	Action    ActionType `json:"action"`
	Table     string     `json:"table"`
	RecordID  string     `json:"record_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
