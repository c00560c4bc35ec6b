// Package access answers "may this user do this in this tenant" questions.
// Every predicate resolves through the membership directory and fails closed:
// any lookup error is reported as a plain "no".
package access

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
)

// Checker evaluates access predicates for one request. Membership and profile
// lookups are memoized for the checker's lifetime, so a handler that asks
// several questions about the same user hits the database once. Checkers are
// cheap; create one per request rather than sharing long-lived instances.
type Checker struct {
	memberships repository.MembershipRepository
	profiles    repository.ProfileRepository

	mu          sync.Mutex
	memberCache map[string]*domain.Membership
	adminCache  map[string]bool
}

func NewChecker(repo repository.PostgresRepository) *Checker {
	return &Checker{
		memberships: repo.Membership(),
		profiles:    repo.Profile(),
		memberCache: make(map[string]*domain.Membership),
		adminCache:  make(map[string]bool),
	}
}

func membershipKey(tenantID, userID string) string {
	return fmt.Sprintf("%s|%s", tenantID, userID)
}

// membership returns the active membership for (tenant, user), or nil when
// none exists. The nil result is cached too, so repeated denials stay cheap.
// Lookup errors are not cached; the caller treats them as a denial.
func (c *Checker) membership(ctx context.Context, tenantID, userID string) (*domain.Membership, error) {
	key := membershipKey(tenantID, userID)

	c.mu.Lock()
	cached, ok := c.memberCache[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	m, err := c.memberships.GetByTenantAndUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.mu.Lock()
			c.memberCache[key] = nil
			c.mu.Unlock()
			return nil, nil
		}
		return nil, err
	}
	if !m.Active {
		m = nil
	}

	c.mu.Lock()
	c.memberCache[key] = m
	c.mu.Unlock()
	return m, nil
}

// IsMember reports whether the user holds an active membership in the tenant.
func (c *Checker) IsMember(ctx context.Context, tenantID, userID string) bool {
	if tenantID == "" || userID == "" {
		return false
	}
	m, err := c.membership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	return m != nil
}

// Role returns the user's role in the tenant, or ok=false when they hold no
// active membership.
func (c *Checker) Role(ctx context.Context, tenantID, userID string) (domain.Role, bool) {
	m, err := c.membership(ctx, tenantID, userID)
	if err != nil || m == nil {
		return "", false
	}
	return m.Role, true
}

// HasRole reports whether the user's role in the tenant is one of the given
// roles.
func (c *Checker) HasRole(ctx context.Context, tenantID, userID string, roles ...domain.Role) bool {
	role, ok := c.Role(ctx, tenantID, userID)
	if !ok {
		return false
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// Can reports whether the user's role in the tenant grants the capability.
// Super admins pass every capability check.
func (c *Checker) Can(ctx context.Context, tenantID, userID string, cap domain.Capability) bool {
	if c.IsSuperAdmin(ctx, userID) {
		return true
	}
	role, ok := c.Role(ctx, tenantID, userID)
	if !ok {
		return false
	}
	return role.Can(cap)
}

// IsAdmin reports whether the user administers the tenant (owner or manager),
// or is a platform super admin.
func (c *Checker) IsAdmin(ctx context.Context, tenantID, userID string) bool {
	return c.Can(ctx, tenantID, userID, domain.CapManageMembers)
}

// IsStaff reports whether the user works orders for the tenant.
func (c *Checker) IsStaff(ctx context.Context, tenantID, userID string) bool {
	return c.Can(ctx, tenantID, userID, domain.CapAdvanceOrders)
}

// IsSuperAdmin reports whether the user's profile carries the platform-wide
// super admin flag. Missing profiles and lookup errors are a "no".
func (c *Checker) IsSuperAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	c.mu.Lock()
	cached, ok := c.adminCache[userID]
	c.mu.Unlock()
	if ok {
		return cached
	}

	p, err := c.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.mu.Lock()
			c.adminCache[userID] = false
			c.mu.Unlock()
		}
		return false
	}

	c.mu.Lock()
	c.adminCache[userID] = p.SuperAdmin
	c.mu.Unlock()
	return p.SuperAdmin
}
