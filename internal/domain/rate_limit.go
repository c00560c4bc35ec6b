package domain

import "time"

// RateLimitRecord is a fixed-window abuse counter: one row per active
// (identifier, endpoint, window start) triple, shared by every caller inside
// that window.
type RateLimitRecord struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Identifier   string    `gorm:"type:text;not null;uniqueIndex:idx_rate_limit_window" json:"identifier"`
	Endpoint     string    `gorm:"type:text;not null;uniqueIndex:idx_rate_limit_window" json:"endpoint"`
	WindowStart  time.Time `gorm:"type:timestamp with time zone;not null;uniqueIndex:idx_rate_limit_window" json:"window_start"`
	WindowEnd    time.Time `gorm:"type:timestamp with time zone;not null" json:"window_end"`
	RequestCount int       `gorm:"not null;default:1" json:"request_count"`
	CreatedAt    time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (RateLimitRecord) TableName() string {
	return "rate_limit_records"
}

// RateLimitDecision is the outcome of one checkAndIncrement call.
type RateLimitDecision struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}
