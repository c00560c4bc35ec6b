package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentFailed   PaymentStatus = "failed"
)

// PaymentTransaction is the durable record handed to the external payment
// gateway worker. Capture and settlement happen outside the core; the core
// only writes the row and later verifies the gateway reference.
type PaymentTransaction struct {
	ID        string        `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID  string        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderID   string        `gorm:"type:uuid;not null;index" json:"order_id"`
	Provider  string        `gorm:"type:text;not null" json:"provider"`
	Reference string        `gorm:"type:text" json:"-"`
	Amount    float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
