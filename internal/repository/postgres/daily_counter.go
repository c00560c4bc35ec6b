package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DailyCounterRepository struct {
	writerDB *gorm.DB
}

func NewDailyCounterRepository(writerDB *gorm.DB) *DailyCounterRepository {
	return &DailyCounterRepository{writerDB: writerDB}
}

// NextNumber advances the per-tenant-per-day counter in a single
// insert-or-increment statement. Concurrent callers serialize on the row
// lock; each one observes a distinct post-increment value, so numbers are
// dense and duplicate-free without application-level retries.
func (r *DailyCounterRepository) NextNumber(ctx context.Context, tenantID string, date time.Time) (int, error) {
	const query = `
		INSERT INTO daily_order_counters (tenant_id, counter_date, last_number, created_at, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (tenant_id, counter_date)
		DO UPDATE SET last_number = daily_order_counters.last_number + 1,
		              updated_at = CURRENT_TIMESTAMP
		RETURNING last_number`

	var lastNumber int
	day := date.UTC().Format("2006-01-02")
	result := r.writerDB.WithContext(ctx).Raw(query, tenantID, day).Scan(&lastNumber)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to advance daily counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("daily counter returned no row for tenant %s on %s", tenantID, day)
	}

	return lastNumber, nil
}
