package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/service"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
)

type BaseHandler struct{}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// RespondError translates a service error into its HTTP shape. Unrecognized
// errors become an opaque 500; their details stay in the logs.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: "Resource not found", Kind: "not_found"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.Error{Error: "Permission denied", Kind: "permission_denied"})
	case errors.Is(err, service.ErrPreconditionFailed):
		c.JSON(http.StatusPreconditionFailed, dto.Error{Error: err.Error(), Kind: "precondition_failed"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, dto.Error{Error: "Rate limit exceeded", Kind: "rate_limited"})
	case errors.Is(err, service.ErrReplayDetected):
		c.JSON(http.StatusConflict, dto.Error{Error: "Request replay detected", Kind: "replay_detected"})
	case errors.Is(err, service.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Invalid request signature", Kind: "invalid_signature"})
	case errors.Is(err, service.ErrTenantExists):
		c.JSON(http.StatusConflict, dto.Error{Error: "Tenant already exists", Kind: "conflict"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Internal server error"})
	}
}
