package domain

import (
	"encoding/json"
	"time"
)

type Tenant struct {
	ID   string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`

	// Slug is unique among active tenants only; a soft-deleted tenant releases
	// its slug for reuse (partial unique index on (slug) WHERE active).
	Slug string `gorm:"type:text;not null;index" json:"slug"`

	Tier         string          `gorm:"type:text;not null;default:'standard'" json:"tier"`
	FeatureFlags json.RawMessage `gorm:"type:jsonb" json:"feature_flags,omitempty"`
	RateLimit    int             `gorm:"not null;default:1000" json:"rate_limit"`
	Active       bool            `gorm:"not null;default:true" json:"active"`

	// SigningSecret signs mutating edge requests for this tenant. It never
	// leaves the backend in API responses.
	SigningSecret string `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// AuditSnapshot is the serializable view of the tenant written to the audit
// trail. The signing secret is deliberately excluded.
func (t *Tenant) AuditSnapshot() json.RawMessage {
	snap := map[string]any{
		"id":         t.ID,
		"name":       t.Name,
		"slug":       t.Slug,
		"tier":       t.Tier,
		"rate_limit": t.RateLimit,
		"active":     t.Active,
	}
	data, _ := json.Marshal(snap)
	return data
}
