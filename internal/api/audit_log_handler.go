package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	pkgutils "github.com/filippocalippo/vittoria-order-api/pkg/utils"
)

//go:generate mockery --name AuditService --output ../mocks
type AuditService interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.AuditLogEntry, error)
	List(ctx context.Context, filter *domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
}

type AuditLogHandler struct {
	*BaseHandler
	service AuditService
}

func NewAuditLogHandler(service AuditService) *AuditLogHandler {
	return &AuditLogHandler{service: service}
}

// ListEntries godoc
// @Summary List audit trail entries
// @Description Admin-only; rich filters are served from the search index
// @Tags audit
// @Produce json
// @Param actor_id query string false "Actor filter"
// @Param action query string false "Action filter (CREATE/UPDATE/DELETE)"
// @Param table query string false "Table name filter"
// @Param record_id query string false "Record filter"
// @Param start_time query string false "Start time (RFC3339 or YYYY-MM-DD)"
// @Param end_time query string false "End time (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {array} domain.AuditLogEntry
// @Failure 403 {object} dto.Error
// @Router /audit-logs [get]
func (h *AuditLogHandler) ListEntries(c *gin.Context) {
	ctx := h.RequestCtx(c)
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Tenant context required", Kind: "permission_denied"})
		return
	}

	filter := &domain.AuditLogFilter{
		TenantID: tenantID,
		ActorID:  c.Query("actor_id"),
		Action:   domain.ActionType(c.Query("action")),
		Table:    c.Query("table"),
		RecordID: c.Query("record_id"),
	}

	if v := c.Query("start_time"); v != "" {
		t, err := pkgutils.ParseUserTime(v, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
			return
		}
		filter.StartTime = t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := pkgutils.ParseUserTime(v, true)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
			return
		}
		filter.EndTime = t
	}
	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	entries, err := h.service.List(ctx, filter)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetEntry godoc
// @Summary Get one audit trail entry
// @Tags audit
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.AuditLogEntry
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /audit-logs/{id} [get]
func (h *AuditLogHandler) GetEntry(c *gin.Context) {
	ctx := h.RequestCtx(c)
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Tenant context required", Kind: "permission_denied"})
		return
	}

	entry, err := h.service.GetByID(ctx, tenantID, c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
