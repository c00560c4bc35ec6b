package domain

import "time"

// DailyCounter backs order numbering: one row per (tenant, calendar day),
// advanced with an atomic insert-or-increment so concurrent order creations
// serialize on the row lock instead of racing a read-then-write.
type DailyCounter struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_daily_counters_tenant_date" json:"tenant_id"`
	CounterDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_counters_tenant_date" json:"counter_date"`
	LastNumber  int       `gorm:"not null;default:0" json:"last_number"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (DailyCounter) TableName() string {
	return "daily_order_counters"
}
