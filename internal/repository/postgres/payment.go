package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type PaymentRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewPaymentRepository(writerDB, readerDB *gorm.DB) *PaymentRepository {
	return &PaymentRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	return r.writerDB.WithContext(ctx).Create(tx).Error
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentTransaction, error) {
	var tx domain.PaymentTransaction
	if err := r.readerDB.WithContext(ctx).First(&tx, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepository) MarkVerified(ctx context.Context, id, reference string) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.PaymentTransaction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    domain.PaymentVerified,
			"reference": reference,
		}).Error
}
