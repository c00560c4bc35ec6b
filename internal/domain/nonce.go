package domain

import "time"

// NonceRecord marks a signed request's nonce as consumed. The primary key on
// the nonce itself makes the insert the replay check: a second insert of the
// same value conflicts and is rejected before any state mutation.
type NonceRecord struct {
	Nonce     string    `gorm:"primaryKey;type:text" json:"nonce"`
	TenantID  string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ExpiresAt time.Time `gorm:"type:timestamp with time zone;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (NonceRecord) TableName() string {
	return "nonce_records"
}
