package domain

import (
	"encoding/json"
	"time"
)

// Membership associates a user with a tenant under exactly one role. Unique
// per (tenant_id, user_id); deactivated rather than deleted so invitation
// history survives.
type Membership struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID string `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_tenant_user" json:"tenant_id"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_tenant_user" json:"user_id"`
	Role     Role   `gorm:"type:text;not null;default:'customer'" json:"role"`
	Active   bool   `gorm:"not null;default:true" json:"active"`

	// Invitation metadata: who enrolled this member, and when.
	InvitedBy string     `gorm:"type:uuid" json:"invited_by,omitempty"`
	InvitedAt *time.Time `gorm:"type:timestamp with time zone" json:"invited_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Tenant    *Tenant   `gorm:"foreignKey:TenantID" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}

func (m *Membership) AuditSnapshot() json.RawMessage {
	data, _ := json.Marshal(map[string]any{
		"id":         m.ID,
		"tenant_id":  m.TenantID,
		"user_id":    m.UserID,
		"role":       m.Role,
		"active":     m.Active,
		"invited_by": m.InvitedBy,
	})
	return data
}
