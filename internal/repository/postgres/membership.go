package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type MembershipRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewMembershipRepository(writerDB, readerDB *gorm.DB) *MembershipRepository {
	return &MembershipRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// Upsert creates or revives the (tenant, user) membership in one statement.
// Re-adding a deactivated member reactivates the existing row and applies the
// requested role, keeping the operation idempotent under retries.
func (r *MembershipRepository) Upsert(ctx context.Context, membership *domain.Membership) (*domain.Membership, error) {
	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}

	err := r.writerDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"role":       membership.Role,
				"active":     true,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(membership).Error
	if err != nil {
		return nil, err
	}

	// Re-read so callers see the surviving row, not the candidate (the
	// conflict path keeps the original ID and invitation metadata).
	return r.GetByTenantAndUser(ctx, membership.TenantID, membership.UserID)
}

func (r *MembershipRepository) GetByTenantAndUser(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	var membership domain.Membership
	err := r.readerDB.WithContext(ctx).
		First(&membership, "tenant_id = ? AND user_id = ?", tenantID, userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := r.readerDB.WithContext(ctx).
		Where("user_id = ? AND active", userID).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *MembershipRepository) UpdateRole(ctx context.Context, tenantID, userID string, role domain.Role) error {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("tenant_id = ? AND user_id = ? AND active", tenantID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
