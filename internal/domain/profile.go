package domain

import (
	"encoding/json"
	"time"
)

// Profile is the global identity record, created automatically the first time
// the identity provider presents a new subject. It may exist with no tenant
// context at all.
type Profile struct {
	ID              string          `gorm:"primaryKey;type:uuid" json:"id"`
	Email           string          `gorm:"type:text" json:"email,omitempty"`
	DisplayName     string          `gorm:"type:text" json:"display_name,omitempty"`
	DefaultTenantID *string         `gorm:"type:uuid" json:"default_tenant_id,omitempty"`
	DefaultRole     Role            `gorm:"type:text;not null;default:'customer'" json:"default_role"`
	SuperAdmin      bool            `gorm:"not null;default:false" json:"super_admin"`
	Metadata        json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
