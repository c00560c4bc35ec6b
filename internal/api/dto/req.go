package dto

import (
	"encoding/json"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required" example:"Trattoria da Mario"`
	Slug      string `json:"slug" binding:"required" example:"trattoria-da-mario"`
	Tier      string `json:"tier" example:"standard"`
	RateLimit int    `json:"rate_limit" example:"1000"`
}

type UpdateTenantRequest struct {
	Name         *string         `json:"name,omitempty"`
	Tier         *string         `json:"tier,omitempty"`
	RateLimit    *int            `json:"rate_limit,omitempty"`
	FeatureFlags json.RawMessage `json:"feature_flags,omitempty" swaggertype:"string"`
}

type AddMemberRequest struct {
	UserID string      `json:"user_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Role   domain.Role `json:"role" binding:"required" example:"customer"`
}

type ChangeRoleRequest struct {
	Role domain.Role `json:"role" binding:"required" example:"manager"`
}

type OrderItemRequest struct {
	MenuItemID string  `json:"menu_item_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string  `json:"name" binding:"required" example:"Margherita"`
	UnitPrice  float64 `json:"unit_price" example:"7.50"`
	Quantity   int     `json:"quantity" binding:"required" example:"2"`
	Notes      string  `json:"notes" example:"no basil"`
}

type PlaceOrderRequest struct {
	Type          domain.OrderType     `json:"type" example:"pickup"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" example:"cash"`

	// CustomerID is honored for staff only: nil means a walk-in counter order.
	// Customer callers always order for themselves regardless of this field.
	CustomerID *string `json:"customer_id,omitempty"`

	DeliveryFee   float64            `json:"delivery_fee" example:"2.50"`
	DeliveryNotes string             `json:"delivery_notes" example:"ring twice"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required" example:"confirmed"`
}

type VerifyPaymentRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
}

type RateLimitCheckRequest struct {
	Identifier    string `json:"identifier" binding:"required" example:"user-123"`
	Endpoint      string `json:"endpoint" binding:"required" example:"order"`
	Max           int    `json:"max" binding:"required" example:"30"`
	WindowMinutes int    `json:"window_minutes" example:"60"`
}
