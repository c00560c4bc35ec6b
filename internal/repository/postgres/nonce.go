package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type NonceRepository struct {
	writerDB *gorm.DB
}

func NewNonceRepository(writerDB *gorm.DB) *NonceRepository {
	return &NonceRepository{writerDB: writerDB}
}

// Insert consumes the nonce. The primary key on the nonce value makes this the
// whole replay check: a reused nonce conflicts and surfaces as
// gorm.ErrDuplicatedKey (error translation is enabled on the connection).
func (r *NonceRepository) Insert(ctx context.Context, record *domain.NonceRecord) error {
	return r.writerDB.WithContext(ctx).Create(record).Error
}

// PurgeExpired removes only records already past their expiry. Anything still
// inside its validity window stays, otherwise the replay window would reopen.
func (r *NonceRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.writerDB.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.NonceRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
