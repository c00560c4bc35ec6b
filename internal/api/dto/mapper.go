package dto

import (
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

// FromTenant converts a tenant domain model to its external representation.
func FromTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Tier:      t.Tier,
		RateLimit: t.RateLimit,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func FromTenants(tenants []domain.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = *FromTenant(&tenants[i])
	}
	return responses
}
