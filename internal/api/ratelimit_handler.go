package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

//go:generate mockery --name RateLimitChecker --output ../mocks
type RateLimitChecker interface {
	CheckAndIncrement(ctx context.Context, identifier, endpoint string, max, windowMinutes int) (*domain.RateLimitDecision, error)
}

type RateLimitHandler struct {
	*BaseHandler
	service RateLimitChecker
}

func NewRateLimitHandler(service RateLimitChecker) *RateLimitHandler {
	return &RateLimitHandler{service: service}
}

// CheckRateLimit godoc
// @Summary Spend one unit of a fixed rate-limit window
// @Description Returns the decision; a denied check does not advance the counter
// @Tags rate-limit
// @Accept json
// @Produce json
// @Param body body dto.RateLimitCheckRequest true "Window to check"
// @Success 200 {object} domain.RateLimitDecision
// @Failure 400 {object} dto.Error
// @Router /rate-limit/check [post]
func (h *RateLimitHandler) CheckRateLimit(c *gin.Context) {
	var req dto.RateLimitCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}
	if req.Max <= 0 {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "max must be positive", Kind: "validation"})
		return
	}

	decision, err := h.service.CheckAndIncrement(h.RequestCtx(c), req.Identifier, req.Endpoint, req.Max, req.WindowMinutes)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}
