package composite

import (
	"context"

	opensearchclient "github.com/opensearch-project/opensearch-go/v2"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/repository/opensearch"
	"github.com/filippocalippo/vittoria-order-api/internal/repository/postgres"
)

type compositeRepository struct {
	postgresRepo repository.PostgresRepository
	osRepo       repository.OpenSearchRepository
}

func NewCompositeRepository(dbConnections *config.DatabaseConnections, osClient *opensearchclient.Client, osConfig *config.OpenSearchConfig) repository.Repository {
	return &compositeRepository{
		postgresRepo: postgres.NewPostgresRepository(dbConnections),
		osRepo:       opensearch.NewRepository(osClient, osConfig),
	}
}

func (r *compositeRepository) Tenant() repository.TenantRepository {
	return r.postgresRepo.Tenant()
}

func (r *compositeRepository) Membership() repository.MembershipRepository {
	return r.postgresRepo.Membership()
}

func (r *compositeRepository) Profile() repository.ProfileRepository {
	return r.postgresRepo.Profile()
}

func (r *compositeRepository) Order() repository.OrderRepository {
	return r.postgresRepo.Order()
}

func (r *compositeRepository) DailyCounter() repository.DailyCounterRepository {
	return r.postgresRepo.DailyCounter()
}

func (r *compositeRepository) RateLimit() repository.RateLimitRepository {
	return r.postgresRepo.RateLimit()
}

func (r *compositeRepository) AuditLog() repository.AuditLogRepository {
	return r.postgresRepo.AuditLog()
}

func (r *compositeRepository) Nonce() repository.NonceRepository {
	return r.postgresRepo.Nonce()
}

func (r *compositeRepository) Notification() repository.NotificationRepository {
	return r.postgresRepo.Notification()
}

func (r *compositeRepository) Payment() repository.PaymentRepository {
	return r.postgresRepo.Payment()
}

// Atomic spans the Postgres side only; OpenSearch writes are asynchronous and
// never participate in the transaction.
func (r *compositeRepository) Atomic(ctx context.Context, fn func(repository.PostgresRepository) error) error {
	return r.postgresRepo.Atomic(ctx, fn)
}

func (r *compositeRepository) OpenSearch() repository.OpenSearchRepository {
	return r.osRepo
}
