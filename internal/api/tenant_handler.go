package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

//go:generate mockery --name DirectoryService --output ../mocks
type DirectoryService interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.CreateTenantResponse, error)
	GetTenant(ctx context.Context, id string) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, id string, req dto.UpdateTenantRequest) (*domain.Tenant, error)
	DeactivateTenant(ctx context.Context, id string) error
	RotateSigningSecret(ctx context.Context, tenantID string) (string, error)
	AddMember(ctx context.Context, tenantID string, req dto.AddMemberRequest) (*domain.Membership, error)
	ChangeRole(ctx context.Context, tenantID, userID string, newRole domain.Role) (*domain.Membership, error)
	ListMembers(ctx context.Context, tenantID string) ([]domain.Membership, error)
	ListOwnMemberships(ctx context.Context) ([]domain.Membership, error)
}

type TenantHandler struct {
	*BaseHandler
	service DirectoryService
}

func NewTenantHandler(service DirectoryService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenant godoc
// @Summary Create a new tenant
// @Description Provision a tenant; returns the signing secret exactly once
// @Tags tenants
// @Accept json
// @Produce json
// @Param body body dto.CreateTenantRequest true "Tenant object"
// @Success 201 {object} dto.CreateTenantResponse
// @Failure 400 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	resp, err := h.service.CreateTenant(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTenant godoc
// @Summary Get a tenant
// @Description Get a tenant the caller is a member of
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.service.GetTenant(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant))
}

// UpdateTenant godoc
// @Summary Update tenant settings
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param body body dto.UpdateTenantRequest true "Fields to update"
// @Success 200 {object} dto.TenantResponse
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenants/{id} [patch]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	tenant, err := h.service.UpdateTenant(h.RequestCtx(c), c.Param("id"), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant))
}

// DeactivateTenant godoc
// @Summary Deactivate a tenant
// @Description Soft-delete the tenant, releasing its slug
// @Tags tenants
// @Param id path string true "Tenant ID"
// @Success 204
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeactivateTenant(c *gin.Context) {
	if err := h.service.DeactivateTenant(h.RequestCtx(c), c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RotateSecret godoc
// @Summary Rotate the tenant's request-signing secret
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.RotateSecretResponse
// @Failure 403 {object} dto.Error
// @Router /tenants/{id}/rotate-secret [post]
func (h *TenantHandler) RotateSecret(c *gin.Context) {
	secret, err := h.service.RotateSigningSecret(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RotateSecretResponse{SigningSecret: secret})
}

// AddMember godoc
// @Summary Add a member to a tenant
// @Description Admin invite, or rate-limited customer self-join
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param body body dto.AddMemberRequest true "Member to add"
// @Success 201 {object} domain.Membership
// @Failure 403 {object} dto.Error
// @Failure 429 {object} dto.Error
// @Router /tenants/{id}/members [post]
func (h *TenantHandler) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	membership, err := h.service.AddMember(h.RequestCtx(c), c.Param("id"), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// ChangeRole godoc
// @Summary Change a member's role
// @Description Admins only; actors can never change their own role
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param userID path string true "User ID"
// @Param body body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} domain.Membership
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenants/{id}/members/{userID}/role [patch]
func (h *TenantHandler) ChangeRole(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	membership, err := h.service.ChangeRole(h.RequestCtx(c), c.Param("id"), c.Param("userID"), req.Role)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, membership)
}

// ListMembers godoc
// @Summary List tenant members
// @Tags members
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {array} domain.Membership
// @Failure 403 {object} dto.Error
// @Router /tenants/{id}/members [get]
func (h *TenantHandler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// ListMyMemberships godoc
// @Summary List the caller's memberships
// @Tags members
// @Produce json
// @Success 200 {array} domain.Membership
// @Router /memberships [get]
func (h *TenantHandler) ListMyMemberships(c *gin.Context) {
	memberships, err := h.service.ListOwnMemberships(h.RequestCtx(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}
