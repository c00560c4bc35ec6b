package repository

import (
	"context"
	"time"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	// GetActiveBySlug only considers non-deleted tenants; a deactivated
	// tenant's slug is free for reuse.
	GetActiveBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Tenant, error)
	GetDefaultTenant(ctx context.Context) (*domain.Tenant, error)
}

//go:generate mockery --name MembershipRepository --output ../mocks
type MembershipRepository interface {
	// Upsert creates the membership or reactivates/updates the existing
	// (tenant, user) row. Idempotent.
	Upsert(ctx context.Context, membership *domain.Membership) (*domain.Membership, error)
	GetByTenantAndUser(ctx context.Context, tenantID, userID string) (*domain.Membership, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Membership, error)
	UpdateRole(ctx context.Context, tenantID, userID string, role domain.Role) error
}

//go:generate mockery --name ProfileRepository --output ../mocks
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

//go:generate mockery --name OrderRepository --output ../mocks
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// GetByIDForUpdate locks the order row for the remainder of the enclosing
	// transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	// CancelPendingOwnedBy atomically flips a pending order owned by the
	// customer to cancelled, returning the number of rows changed. Zero rows
	// means the order was missing, not theirs, or no longer pending.
	CancelPendingOwnedBy(ctx context.Context, orderID, customerID string) (int64, error)
	MarkPaid(ctx context.Context, id string) error
	SetPrinted(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

//go:generate mockery --name DailyCounterRepository --output ../mocks
type DailyCounterRepository interface {
	// NextNumber advances the (tenant, date) counter in one atomic
	// insert-or-increment and returns the post-increment value. The first
	// call of a day returns 1.
	NextNumber(ctx context.Context, tenantID string, date time.Time) (int, error)
}

//go:generate mockery --name RateLimitRepository --output ../mocks
type RateLimitRepository interface {
	// IncrementWindow finds-or-creates the window row and increments it only
	// while the stored count is below max. It returns the post-increment
	// count and whether the increment happened.
	IncrementWindow(ctx context.Context, identifier, endpoint string, windowStart, windowEnd time.Time, max int) (count int, incremented bool, err error)
	// PurgeBefore removes rows whose window ended before the cutoff.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

//go:generate mockery --name AuditLogRepository --output ../mocks
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
	GetByID(ctx context.Context, id string) (*domain.AuditLogEntry, error)
	List(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
	ListBeforeDate(ctx context.Context, tenantID string, beforeDate time.Time) ([]domain.AuditLogEntry, error)
	DeleteBeforeDate(ctx context.Context, tenantID string, beforeDate time.Time) (int64, error)
}

//go:generate mockery --name NonceRepository --output ../mocks
type NonceRepository interface {
	// Insert consumes the nonce. A duplicate insert returns
	// gorm.ErrDuplicatedKey, which callers translate to a replay rejection.
	Insert(ctx context.Context, record *domain.NonceRecord) error
	// PurgeExpired deletes only records whose expiry has passed; an early
	// purge would reopen the replay window.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

//go:generate mockery --name NotificationRepository --output ../mocks
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

//go:generate mockery --name PaymentRepository --output ../mocks
type PaymentRepository interface {
	Create(ctx context.Context, tx *domain.PaymentTransaction) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentTransaction, error)
	MarkVerified(ctx context.Context, id, reference string) error
}

//go:generate mockery --name OpenSearchRepository --output ../mocks
type OpenSearchRepository interface {
	Index(ctx context.Context, entry *domain.AuditLogEntry) error
	BulkIndex(ctx context.Context, entries []domain.AuditLogEntry) error
	Search(ctx context.Context, filter *domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
	CreateIndex(ctx context.Context, tenantID string, t time.Time) error
	DeleteIndex(ctx context.Context, tenantID string) error
}

//go:generate mockery --name PostgresRepository --output ../mocks
type PostgresRepository interface {
	Tenant() TenantRepository
	Membership() MembershipRepository
	Profile() ProfileRepository
	Order() OrderRepository
	DailyCounter() DailyCounterRepository
	RateLimit() RateLimitRepository
	AuditLog() AuditLogRepository
	Nonce() NonceRepository
	Notification() NotificationRepository
	Payment() PaymentRepository
	// Atomic runs fn inside one database transaction; every repository handed
	// to fn is bound to that transaction. Returning an error rolls everything
	// back, including audit and notification writes.
	Atomic(ctx context.Context, fn func(PostgresRepository) error) error
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	PostgresRepository
	OpenSearch() OpenSearchRepository
}
