package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
)

type postgresRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB

	tenantRepo       repository.TenantRepository
	membershipRepo   repository.MembershipRepository
	profileRepo      repository.ProfileRepository
	orderRepo        repository.OrderRepository
	counterRepo      repository.DailyCounterRepository
	rateLimitRepo    repository.RateLimitRepository
	auditLogRepo     repository.AuditLogRepository
	nonceRepo        repository.NonceRepository
	notificationRepo repository.NotificationRepository
	paymentRepo      repository.PaymentRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.PostgresRepository {
	return newFromDBs(dbConnections.Writer, dbConnections.Reader)
}

func newFromDBs(writerDB, readerDB *gorm.DB) *postgresRepository {
	return &postgresRepository{
		writerDB:         writerDB,
		readerDB:         readerDB,
		tenantRepo:       NewTenantRepository(writerDB, readerDB),
		membershipRepo:   NewMembershipRepository(writerDB, readerDB),
		profileRepo:      NewProfileRepository(writerDB, readerDB),
		orderRepo:        NewOrderRepository(writerDB, readerDB),
		counterRepo:      NewDailyCounterRepository(writerDB),
		rateLimitRepo:    NewRateLimitRepository(writerDB),
		auditLogRepo:     NewAuditLogRepository(writerDB, readerDB),
		nonceRepo:        NewNonceRepository(writerDB),
		notificationRepo: NewNotificationRepository(writerDB, readerDB),
		paymentRepo:      NewPaymentRepository(writerDB, readerDB),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository             { return r.tenantRepo }
func (r *postgresRepository) Membership() repository.MembershipRepository    { return r.membershipRepo }
func (r *postgresRepository) Profile() repository.ProfileRepository          { return r.profileRepo }
func (r *postgresRepository) Order() repository.OrderRepository              { return r.orderRepo }
func (r *postgresRepository) DailyCounter() repository.DailyCounterRepository { return r.counterRepo }
func (r *postgresRepository) RateLimit() repository.RateLimitRepository      { return r.rateLimitRepo }
func (r *postgresRepository) AuditLog() repository.AuditLogRepository        { return r.auditLogRepo }
func (r *postgresRepository) Nonce() repository.NonceRepository              { return r.nonceRepo }
func (r *postgresRepository) Notification() repository.NotificationRepository {
	return r.notificationRepo
}
func (r *postgresRepository) Payment() repository.PaymentRepository { return r.paymentRepo }

// Atomic runs fn against a repository set bound to one writer transaction.
// Reads inside the transaction go through the same connection so they observe
// the transaction's own writes.
func (r *postgresRepository) Atomic(ctx context.Context, fn func(repository.PostgresRepository) error) error {
	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newFromDBs(tx, tx))
	})
}
