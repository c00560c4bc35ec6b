package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type OrderRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewOrderRepository(writerDB, readerDB *gorm.DB) *OrderRepository {
	return &OrderRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// Create inserts the order together with its item snapshots. Item rows carry
// the tenant id so isolation checks never need a join.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].TenantID = order.TenantID
	}

	return r.writerDB.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.readerDB.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate takes a row lock so concurrent status writers serialize on
// the order. Only meaningful inside Atomic.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.writerDB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

// CancelPendingOwnedBy is the customer cancel guard collapsed into a single
// conditional UPDATE: the status check and the transition happen in one
// statement, so a concurrent staff confirmation and a customer cancel cannot
// both win.
func (r *OrderRepository) CancelPendingOwnedBy(ctx context.Context, orderID, customerID string) (int64, error) {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND customer_id = ? AND status = ?", orderID, customerID, domain.OrderStatusPending).
		Updates(map[string]any{
			"status":     domain.OrderStatusCancelled,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id string) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("paid", true).Error
}

func (r *OrderRepository) SetPrinted(ctx context.Context, id string) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("printed", true).Error
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var orders []domain.Order

	db := r.readerDB.WithContext(ctx)
	if filter.TenantID == "" {
		return nil, gorm.ErrMissingWhereClause
	}
	db = db.Where("tenant_id = ?", filter.TenantID)

	if filter.CustomerID != "" {
		db = db.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if !filter.StartTime.IsZero() {
		db = db.Where("created_at >= ?", filter.StartTime)
	}
	if !filter.EndTime.IsZero() {
		db = db.Where("created_at <= ?", filter.EndTime)
	}

	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	db = db.Order("created_at DESC")

	if err := db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}
