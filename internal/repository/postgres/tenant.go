package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

type TenantRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTenantRepository(writerDB, readerDB *gorm.DB) *TenantRepository {
	return &TenantRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if err := r.writerDB.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) GetActiveBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).
		First(&tenant, "slug = ? AND active", slug).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	return r.writerDB.WithContext(ctx).Save(tenant).Error
}

// Deactivate soft-deletes the tenant. The slug becomes reusable because slug
// uniqueness only applies to active rows.
func (r *TenantRepository) Deactivate(ctx context.Context, id string) error {
	return r.writerDB.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *TenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	if err := r.readerDB.WithContext(ctx).Where("active").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetDefaultTenant returns the platform's signup-bootstrap tenant, if one is
// configured. Not finding one is not an error; bootstrap just skips
// enrollment.
func (r *TenantRepository) GetDefaultTenant(ctx context.Context) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.readerDB.WithContext(ctx).
		Where("active AND feature_flags ->> 'default_signup_tenant' = 'true'").
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
