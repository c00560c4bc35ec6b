package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type RateLimitRepository struct {
	writerDB *gorm.DB
}

func NewRateLimitRepository(writerDB *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{writerDB: writerDB}
}

// IncrementWindow is the conditional atomic increment behind the fixed-window
// limiter. A missing row is created at count 1; an existing row is bumped only
// while its count is below max. The WHERE on the conflict branch means an
// exhausted window is left untouched, so the stored count never exceeds max.
func (r *RateLimitRepository) IncrementWindow(ctx context.Context, identifier, endpoint string, windowStart, windowEnd time.Time, max int) (int, bool, error) {
	const query = `
		INSERT INTO rate_limit_records
			(id, identifier, endpoint, window_start, window_end, request_count, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (identifier, endpoint, window_start)
		DO UPDATE SET request_count = rate_limit_records.request_count + 1,
		              updated_at = CURRENT_TIMESTAMP
		WHERE rate_limit_records.request_count < ?
		RETURNING request_count`

	var count int
	result := r.writerDB.WithContext(ctx).
		Raw(query, identifier, endpoint, windowStart, windowEnd, max).
		Scan(&count)
	if result.Error != nil {
		return 0, false, fmt.Errorf("failed to increment rate limit window: %w", result.Error)
	}

	// No returned row means the conflict branch was suppressed: the window is
	// already at max.
	if result.RowsAffected == 0 {
		return max, false, nil
	}

	return count, true, nil
}

// PurgeBefore drops windows that ended before the cutoff. Called
// opportunistically; rows inside or near their window are never touched, so
// an active window's count cannot be resurrected at zero.
func (r *RateLimitRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.writerDB.WithContext(ctx).
		Where("window_end < ?", cutoff).
		Delete(&domain.RateLimitRecord{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
