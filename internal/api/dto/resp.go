package dto

import (
	"time"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

// TenantResponse is the external view of a tenant. The signing secret never
// appears here.
type TenantResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string    `json:"name" example:"Trattoria da Mario"`
	Slug      string    `json:"slug" example:"trattoria-da-mario"`
	Tier      string    `json:"tier" example:"standard"`
	RateLimit int       `json:"rate_limit" example:"1000"`
	Active    bool      `json:"active" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

// CreateTenantResponse carries the one-time signing secret alongside the
// tenant. This is the only place the secret is ever serialized.
type CreateTenantResponse struct {
	Tenant        *TenantResponse `json:"tenant"`
	SigningSecret string          `json:"signing_secret" example:"9f86d081884c7d659a2feaa0c55ad015..."`
}

// RotateSecretResponse returns a freshly rotated signing secret, once.
type RotateSecretResponse struct {
	SigningSecret string `json:"signing_secret"`
}

// PlaceOrderResponse returns the created order plus the pending payment
// transaction handle for non-cash methods.
type PlaceOrderResponse struct {
	Order                *domain.Order `json:"order"`
	PaymentTransactionID string        `json:"payment_transaction_id,omitempty"`
}

// OrderEvent is the pub/sub payload fanned out to staff dashboards on every
// order state change.
type OrderEvent struct {
	TenantID    string             `json:"tenant_id"`
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Status      domain.OrderStatus `json:"status"`
	OccurredAt  time.Time          `json:"occurred_at"`
}
