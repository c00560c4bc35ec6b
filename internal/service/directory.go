package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/access"
	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

const joinEndpoint = "join"

// DirectoryService owns tenants, memberships and profiles. Every mutation
// writes its audit entry inside the same transaction; index messages for the
// search mirror go out after commit, best effort.
type DirectoryService struct {
	repo          repository.Repository
	rateLimitSvc  *RateLimitService
	sqsSvc        SQSService
	logger        *logger.Logger
	joinRateLimit int
}

func NewDirectoryService(repo repository.Repository, rateLimitSvc *RateLimitService, sqsSvc SQSService, logger *logger.Logger, joinRateLimit int) *DirectoryService {
	return &DirectoryService{
		repo:          repo,
		rateLimitSvc:  rateLimitSvc,
		sqsSvc:        sqsSvc,
		logger:        logger,
		joinRateLimit: joinRateLimit,
	}
}

// EnsureProfile returns the caller's profile, creating it on first sight. New
// profiles are enrolled as customers in the default tenant when one is
// configured. Called by the auth middleware, so it must stay idempotent and
// tolerate concurrent first requests.
func (s *DirectoryService) EnsureProfile(ctx context.Context, userID, email, displayName string) (*domain.Profile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	created := &domain.Profile{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		DefaultRole: domain.RoleCustomer,
	}

	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		if _, err := tx.Profile().Create(ctx, created); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		defaultTenant, err := tx.Tenant().GetDefaultTenant(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to resolve default tenant: %w", err)
		}

		now := time.Now()
		membership := &domain.Membership{
			TenantID:  defaultTenant.ID,
			UserID:    userID,
			Role:      domain.RoleCustomer,
			Active:    true,
			InvitedAt: &now,
		}
		saved, err := tx.Membership().Upsert(ctx, membership)
		if err != nil {
			return fmt.Errorf("failed to enroll in default tenant: %w", err)
		}

		entry := newAuditEntry(ctx, defaultTenant.ID, domain.ActionCreate, domain.Membership{}.TableName(), saved.ID, nil, saved.AuditSnapshot())
		entry.ActorID = userID
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		// A concurrent request may have won the race; re-read before failing.
		if existing, readErr := s.repo.Profile().GetByID(ctx, userID); readErr == nil {
			return existing, nil
		}
		return nil, err
	}

	return created, nil
}

// CreateTenant provisions a tenant with a fresh signing secret and enrolls the
// creator as owner. The secret is returned exactly once, in the create
// response; it is never readable afterwards.
func (s *DirectoryService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.CreateTenantResponse, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	if req.Name == "" || req.Slug == "" {
		return nil, fmt.Errorf("%w: name and slug are required", ErrValidation)
	}

	checker := access.NewChecker(s.repo)
	if !checker.IsSuperAdmin(ctx, actorID) {
		return nil, ErrPermissionDenied
	}

	secret, err := GenerateSigningSecret()
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Slug:          req.Slug,
		Tier:          req.Tier,
		RateLimit:     req.RateLimit,
		Active:        true,
		SigningSecret: secret,
	}
	if tenant.Tier == "" {
		tenant.Tier = "standard"
	}
	if tenant.RateLimit <= 0 {
		tenant.RateLimit = 1000
	}

	var (
		membership *domain.Membership
		entries    []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		// Slug uniqueness is among active tenants only; a deactivated tenant
		// releases its slug.
		if _, err := tx.Tenant().GetActiveBySlug(ctx, req.Slug); err == nil {
			return ErrTenantExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check slug: %w", err)
		}

		if _, err := tx.Tenant().Create(ctx, tenant); err != nil {
			// The pre-check races with concurrent creates; the partial unique
			// index is the arbiter.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTenantExists
			}
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		now := time.Now()
		membership, err = tx.Membership().Upsert(ctx, &domain.Membership{
			TenantID:  tenant.ID,
			UserID:    actorID,
			Role:      domain.RoleOwner,
			Active:    true,
			InvitedBy: actorID,
			InvitedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to enroll owner: %w", err)
		}

		tenantEntry := newAuditEntry(ctx, tenant.ID, domain.ActionCreate, domain.Tenant{}.TableName(), tenant.ID, nil, tenant.AuditSnapshot())
		memberEntry := newAuditEntry(ctx, tenant.ID, domain.ActionCreate, domain.Membership{}.TableName(), membership.ID, nil, membership.AuditSnapshot())
		for _, entry := range []*domain.AuditLogEntry{tenantEntry, memberEntry} {
			if err := tx.AuditLog().Create(ctx, entry); err != nil {
				return fmt.Errorf("failed to record audit entry: %w", err)
			}
			entries = append(entries, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)

	return &dto.CreateTenantResponse{
		Tenant:        dto.FromTenant(tenant),
		SigningSecret: secret,
	}, nil
}

// GetTenant returns the tenant to its members. Non-members learn nothing, not
// even that the id exists.
func (s *DirectoryService) GetTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	checker := access.NewChecker(s.repo)
	if !checker.IsMember(ctx, id, actorID) && !checker.IsSuperAdmin(ctx, actorID) {
		return nil, ErrNotFound
	}

	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

// UpdateTenant applies settings changes for tenant admins.
func (s *DirectoryService) UpdateTenant(ctx context.Context, id string, req dto.UpdateTenantRequest) (*domain.Tenant, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	checker := access.NewChecker(s.repo)
	if !checker.Can(ctx, id, actorID, domain.CapManageTenant) {
		return nil, ErrPermissionDenied
	}

	var (
		updated *domain.Tenant
		entries []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		tenant, err := tx.Tenant().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get tenant: %w", err)
		}

		before := tenant.AuditSnapshot()
		if req.Name != nil {
			tenant.Name = *req.Name
		}
		if req.Tier != nil {
			tenant.Tier = *req.Tier
		}
		if req.RateLimit != nil {
			tenant.RateLimit = *req.RateLimit
		}
		if req.FeatureFlags != nil {
			tenant.FeatureFlags = req.FeatureFlags
		}
		tenant.UpdatedAt = time.Now()

		if err := tx.Tenant().Update(ctx, tenant); err != nil {
			return fmt.Errorf("failed to update tenant: %w", err)
		}

		entry := newAuditEntry(ctx, tenant.ID, domain.ActionUpdate, domain.Tenant{}.TableName(), tenant.ID, before, tenant.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		updated = tenant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)
	return updated, nil
}

// DeactivateTenant soft-deletes the tenant, releasing its slug.
func (s *DirectoryService) DeactivateTenant(ctx context.Context, id string) error {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return ErrPermissionDenied
	}

	checker := access.NewChecker(s.repo)
	if !checker.HasRole(ctx, id, actorID, domain.RoleOwner) && !checker.IsSuperAdmin(ctx, actorID) {
		return ErrPermissionDenied
	}

	var entries []domain.AuditLogEntry
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		tenant, err := tx.Tenant().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		before := tenant.AuditSnapshot()

		if err := tx.Tenant().Deactivate(ctx, id); err != nil {
			return fmt.Errorf("failed to deactivate tenant: %w", err)
		}
		tenant.Active = false

		entry := newAuditEntry(ctx, id, domain.ActionDelete, domain.Tenant{}.TableName(), id, before, tenant.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		return nil
	})
	if err != nil {
		return err
	}

	s.emitIndex(ctx, entries...)
	return nil
}

// RotateSigningSecret replaces the tenant's request-signing secret and returns
// the new value once. In-flight clients signed with the old secret start
// failing immediately.
func (s *DirectoryService) RotateSigningSecret(ctx context.Context, tenantID string) (string, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return "", ErrPermissionDenied
	}

	checker := access.NewChecker(s.repo)
	if !checker.Can(ctx, tenantID, actorID, domain.CapManageTenant) {
		return "", ErrPermissionDenied
	}

	secret, err := GenerateSigningSecret()
	if err != nil {
		return "", err
	}

	var entries []domain.AuditLogEntry
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		tenant, err := tx.Tenant().GetByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get tenant: %w", err)
		}

		before := tenant.AuditSnapshot()
		tenant.SigningSecret = secret
		tenant.UpdatedAt = time.Now()
		if err := tx.Tenant().Update(ctx, tenant); err != nil {
			return fmt.Errorf("failed to rotate signing secret: %w", err)
		}

		// Snapshots never carry the secret; the entry records that a rotation
		// happened, not what it rotated to.
		entry := newAuditEntry(ctx, tenantID, domain.ActionUpdate, domain.Tenant{}.TableName(), tenantID, before, tenant.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		return nil
	})
	if err != nil {
		return "", err
	}

	s.emitIndex(ctx, entries...)
	return secret, nil
}

// AddMember enrolls a user in a tenant. Two paths share this entry point:
// admins inviting anyone at any role, and a user joining themselves as a
// customer. The self-join path is rate limited because it is reachable
// straight from signup.
func (s *DirectoryService) AddMember(ctx context.Context, tenantID string, req dto.AddMemberRequest) (*domain.Membership, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	if !domain.IsValidRole(string(req.Role)) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	checker := access.NewChecker(s.repo)
	selfJoin := req.UserID == actorID && req.Role == domain.RoleCustomer

	if selfJoin {
		if _, err := s.rateLimitSvc.Enforce(ctx, actorID, joinEndpoint, s.joinRateLimit); err != nil {
			return nil, err
		}
	} else {
		// Re-adding yourself at a different role would sidestep the rule that
		// role changes on yourself always take a second admin.
		if req.UserID == actorID {
			return nil, fmt.Errorf("%w: cannot change own role", ErrPermissionDenied)
		}
		if !checker.IsAdmin(ctx, tenantID, actorID) {
			return nil, ErrPermissionDenied
		}
		// Only an owner may mint another owner.
		if req.Role == domain.RoleOwner &&
			!checker.HasRole(ctx, tenantID, actorID, domain.RoleOwner) &&
			!checker.IsSuperAdmin(ctx, actorID) {
			return nil, ErrPermissionDenied
		}
	}

	var (
		saved   *domain.Membership
		entries []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		tenant, err := tx.Tenant().GetByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		if !tenant.Active {
			return fmt.Errorf("%w: tenant is deactivated", ErrPreconditionFailed)
		}

		now := time.Now()
		saved, err = tx.Membership().Upsert(ctx, &domain.Membership{
			TenantID:  tenantID,
			UserID:    req.UserID,
			Role:      req.Role,
			Active:    true,
			InvitedBy: actorID,
			InvitedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert membership: %w", err)
		}

		entry := newAuditEntry(ctx, tenantID, domain.ActionCreate, domain.Membership{}.TableName(), saved.ID, nil, saved.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)
	return saved, nil
}

// ChangeRole moves an existing member to a new role. Actors never change
// their own role, in either direction; a second admin has to do it.
func (s *DirectoryService) ChangeRole(ctx context.Context, tenantID, userID string, newRole domain.Role) (*domain.Membership, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	if !domain.IsValidRole(string(newRole)) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, newRole)
	}
	if actorID == userID {
		return nil, fmt.Errorf("%w: cannot change own role", ErrPermissionDenied)
	}

	checker := access.NewChecker(s.repo)
	if !checker.IsAdmin(ctx, tenantID, actorID) {
		return nil, ErrPermissionDenied
	}

	var (
		updated *domain.Membership
		entries []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		current, err := tx.Membership().GetByTenantAndUser(ctx, tenantID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get membership: %w", err)
		}
		if !current.Active {
			return ErrNotFound
		}

		// Granting or revoking the owner role is reserved to owners.
		if (newRole == domain.RoleOwner || current.Role == domain.RoleOwner) &&
			!checker.HasRole(ctx, tenantID, actorID, domain.RoleOwner) &&
			!checker.IsSuperAdmin(ctx, actorID) {
			return ErrPermissionDenied
		}

		before := current.AuditSnapshot()
		if err := tx.Membership().UpdateRole(ctx, tenantID, userID, newRole); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to update role: %w", err)
		}
		current.Role = newRole

		entry := newAuditEntry(ctx, tenantID, domain.ActionUpdate, domain.Membership{}.TableName(), current.ID, before, current.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)
	return updated, nil
}

// ListMembers returns the tenant's member roster to its admins.
func (s *DirectoryService) ListMembers(ctx context.Context, tenantID string) ([]domain.Membership, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	checker := access.NewChecker(s.repo)
	if !checker.IsAdmin(ctx, tenantID, actorID) {
		return nil, ErrPermissionDenied
	}

	members, err := s.repo.Membership().ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ListOwnMemberships returns the caller's memberships across all tenants.
func (s *DirectoryService) ListOwnMemberships(ctx context.Context) ([]domain.Membership, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	memberships, err := s.repo.Membership().ListByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return memberships, nil
}

// GetTenantBySlugForSigning resolves an active tenant for the signing
// middleware. No access check: the middleware runs before identity is
// attached, and the result never leaves the server.
func (s *DirectoryService) GetTenantBySlugForSigning(ctx context.Context, slug string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}
	return tenant, nil
}

// GetTenantForSigning resolves a tenant by id for the signing middleware.
func (s *DirectoryService) GetTenantForSigning(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}
	if !tenant.Active {
		return nil, ErrNotFound
	}
	return tenant, nil
}

func (s *DirectoryService) emitIndex(ctx context.Context, entries ...domain.AuditLogEntry) {
	if len(entries) == 0 {
		return
	}
	if err := s.sqsSvc.SendIndexMessage(ctx, entries...); err != nil {
		s.logger.Error("failed to send index message", err)
	}
}
