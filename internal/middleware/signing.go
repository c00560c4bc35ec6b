package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/service"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

const (
	HeaderSignature = "X-Signature"
	HeaderNonce     = "X-Nonce"
	HeaderTimestamp = "X-Timestamp"
)

// TenantResolver is the signing-time slice of the directory service.
type TenantResolver interface {
	GetTenantForSigning(ctx context.Context, id string) (*domain.Tenant, error)
}

// SigningMiddleware gates mutating endpoints behind the per-tenant HMAC
// request signature and the nonce replay guard. Runs after JWTAuth, so the
// tenant context is already attached.
type SigningMiddleware struct {
	replaySvc *service.ReplayService
	tenants   TenantResolver
	logger    *logger.Logger
}

func NewSigningMiddleware(replaySvc *service.ReplayService, tenants TenantResolver, logger *logger.Logger) *SigningMiddleware {
	return &SigningMiddleware{
		replaySvc: replaySvc,
		tenants:   tenants,
		logger:    logger,
	}
}

func (m *SigningMiddleware) RequireSignature() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tenantID, err := utils.GetTenantIDFromContext(contextWithGinKeys(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: "Tenant context required for signed requests", Kind: "invalid_signature"})
			return
		}

		tenant, err := m.tenants.GetTenantForSigning(ctx, tenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: "Unknown or inactive tenant", Kind: "invalid_signature"})
			return
		}

		// The body is consumed for the digest and restored for the handler.
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Error: "Failed to read request body", Kind: "validation"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		err = m.replaySvc.VerifyAndConsume(
			ctx,
			tenant,
			c.Request.Method,
			c.Request.URL.Path,
			c.GetHeader(HeaderTimestamp),
			c.GetHeader(HeaderNonce),
			c.GetHeader(HeaderSignature),
			body,
		)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrReplayDetected):
				c.AbortWithStatusJSON(http.StatusConflict, dto.Error{Error: "Request replay detected", Kind: "replay_detected"})
			case errors.Is(err, service.ErrInvalidSignature):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: "Invalid request signature", Kind: "invalid_signature"})
			default:
				m.logger.Error("signature verification failed", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error{Error: "Signature verification failed"})
			}
			return
		}

		c.Next()
	}
}

// contextWithGinKeys mirrors gin's per-request keys into a plain context so
// the utils getters work before the handler layer copies them.
func contextWithGinKeys(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	for k, v := range c.Keys {
		ctx = context.WithValue(ctx, utils.ContextKey(k), v)
	}
	return ctx
}
