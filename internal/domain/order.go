package domain

import (
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
	OrderTypeCounter  OrderType = "counter"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

// forwardTransitions is the single source of truth for the order workflow.
// Each non-terminal status has exactly one forward successor; cancellation is
// handled separately because its permission depends on who is asking.
var forwardTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusPreparing,
	OrderStatusPreparing:  OrderStatusReady,
	OrderStatusReady:      OrderStatusDelivering,
	OrderStatusDelivering: OrderStatusDelivered,
	OrderStatusDelivered:  OrderStatusCompleted,
}

// IsTerminalStatus reports whether no further transition is permitted without
// elevated privilege.
func IsTerminalStatus(s OrderStatus) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether moving from one status to the next is a legal
// forward step. Same-state writes and cancellation are not forward steps.
func CanTransition(from, to OrderStatus) bool {
	next, ok := forwardTransitions[from]
	return ok && next == to
}

// CustomerMayCancel reports whether the owning customer may still cancel the
// order themselves. Staff cancel from any non-terminal state instead.
func CustomerMayCancel(s OrderStatus) bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// statusNotifications maps each customer-visible status to the notification
// sent when the order reaches it.
var statusNotifications = map[OrderStatus]struct{ Title, Body string }{
	OrderStatusConfirmed:  {"Order confirmed", "Your order has been confirmed and will be prepared shortly."},
	OrderStatusPreparing:  {"Order in preparation", "The kitchen has started preparing your order."},
	OrderStatusReady:      {"Order ready", "Your order is ready."},
	OrderStatusDelivering: {"Order on its way", "Your order is out for delivery."},
	OrderStatusDelivered:  {"Order delivered", "Your order has been delivered. Enjoy!"},
	OrderStatusCompleted:  {"Order completed", "Thank you for your order."},
	OrderStatusCancelled:  {"Order cancelled", "Your order has been cancelled."},
}

// NotificationForStatus returns the customer-facing notification text for a
// status change, or ok=false when the status carries no notification.
func NotificationForStatus(s OrderStatus) (title, body string, ok bool) {
	n, ok := statusNotifications[s]
	return n.Title, n.Body, ok
}

type Order struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	// CustomerID is nil for walk-in/counter orders taken at the register.
	CustomerID *string `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	// OrderNumber is the human-readable per-tenant-per-day identifier,
	// YYYYMMDD-NNN.
	OrderNumber string `gorm:"type:text;not null;index" json:"order_number"`

	Type   OrderType   `gorm:"type:text;not null;default:'pickup'" json:"type"`
	Status OrderStatus `gorm:"type:text;not null;default:'pending'" json:"status"`

	Subtotal      float64 `gorm:"type:numeric(10,2);not null;default:0" json:"subtotal"`
	DeliveryFee   float64 `gorm:"type:numeric(10,2);not null;default:0" json:"delivery_fee"`
	Total         float64 `gorm:"type:numeric(10,2);not null;default:0" json:"total"`
	AssignedTo    *string `gorm:"type:uuid" json:"assigned_to,omitempty"`
	DeliveryNotes string  `gorm:"type:text" json:"delivery_notes,omitempty"`

	PaymentMethod PaymentMethod `gorm:"type:text;not null;default:'cash'" json:"payment_method"`
	Paid          bool          `gorm:"not null;default:false" json:"paid"`
	Printed       bool          `gorm:"not null;default:false" json:"printed"`

	CreatedAt time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Tenant    *Tenant     `gorm:"foreignKey:TenantID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// AuditSnapshot captures the order state for the audit trail. Item snapshots
// are immutable so only their count is recorded; payment gateway references
// live on the payment transaction and are redacted here.
func (o *Order) AuditSnapshot() json.RawMessage {
	data, _ := json.Marshal(map[string]any{
		"id":             o.ID,
		"tenant_id":      o.TenantID,
		"customer_id":    o.CustomerID,
		"order_number":   o.OrderNumber,
		"type":           o.Type,
		"status":         o.Status,
		"total":          o.Total,
		"assigned_to":    o.AssignedTo,
		"payment_method": o.PaymentMethod,
		"paid":           o.Paid,
		"printed":        o.Printed,
		"item_count":     len(o.Items),
	})
	return data
}

// OrderItem is a price/name snapshot taken at order time. Rows are never
// updated after insert, so later menu edits cannot rewrite history.
type OrderItem struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID    string    `gorm:"type:uuid;not null;index" json:"order_id"`
	TenantID   string    `gorm:"type:uuid;not null" json:"tenant_id"`
	MenuItemID string    `gorm:"type:uuid" json:"menu_item_id,omitempty"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	UnitPrice  float64   `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderFilter struct {
	TenantID   string      `json:"tenant_id"`
	CustomerID string      `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	Type       OrderType   `json:"type"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
