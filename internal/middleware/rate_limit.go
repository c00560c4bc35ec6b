package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

// RateLimitMiddleware is the cheap Redis edge limiter. It protects the
// service from floods; the durable per-endpoint fixed windows are enforced
// separately in the database by the rate limit service.
type RateLimitMiddleware struct {
	redis   *redis.Client
	tenants repository.TenantRepository
	config  *config.Config
	logger  *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, tenants repository.TenantRepository, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:   redis,
		tenants: tenants,
		config:  config,
		logger:  logger,
	}
}

// TenantRateLimit implements per-tenant rate limiting using the budget stored
// on the tenant row.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := utils.GetTenantIDFromContext(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Tenant ID required for rate limiting"})
			c.Abort()
			return
		}

		limit := m.getTenantRateLimit(c, tenantID)
		key := fmt.Sprintf("rate_limit:tenant:%s", tenantID)

		// Check current request count
		current, err := m.redis.Get(c.Request.Context(), key).Int()
		if err != nil && err != redis.Nil {
			m.logger.Error("Redis error in rate limiting", err)
			// Allow request to continue on Redis error (fail open)
			c.Next()
			return
		}

		if current >= limit {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
				"limit": limit,
				"reset": time.Now().Add(time.Minute).Unix(),
			})
			c.Abort()
			return
		}

		// Increment counter
		pipe := m.redis.Pipeline()
		pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, time.Minute)
		_, err = pipe.Exec(c.Request.Context())

		if err != nil {
			m.logger.Error("Redis pipeline error in rate limiting", err)
		}

		// Add rate limit headers
		remaining := limit - (current + 1)
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}

// GlobalRateLimit implements global rate limiting based on IP
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate_limit:global:%s", clientIP)

		// Check current request count
		current, err := m.redis.Get(c.Request.Context(), key).Int()
		if err != nil && err != redis.Nil {
			m.logger.Error("Redis error in global rate limiting", err)
			c.Next()
			return
		}

		if current >= limit {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Global rate limit exceeded",
				"limit": limit,
				"reset": time.Now().Add(time.Minute).Unix(),
			})
			c.Abort()
			return
		}

		// Increment counter
		pipe := m.redis.Pipeline()
		pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, time.Minute)
		_, err = pipe.Exec(c.Request.Context())

		if err != nil {
			m.logger.Error("Redis pipeline error in global rate limiting", err)
		}

		// Add rate limit headers
		remaining := limit - (current + 1)
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}

// getTenantRateLimit reads the tenant's configured budget, cached in Redis so
// the hot path does not hit Postgres on every request.
func (m *RateLimitMiddleware) getTenantRateLimit(c *gin.Context, tenantID string) int {
	cacheKey := fmt.Sprintf("rate_limit:budget:%s", tenantID)
	if cached, err := m.redis.Get(c.Request.Context(), cacheKey).Int(); err == nil && cached > 0 {
		return cached
	}

	if m.tenants != nil {
		if tenant, err := m.tenants.GetByID(c.Request.Context(), tenantID); err == nil && tenant.RateLimit > 0 {
			if err := m.redis.Set(c.Request.Context(), cacheKey, tenant.RateLimit, 5*time.Minute).Err(); err != nil {
				m.logger.Error("failed to cache tenant rate limit", err)
			}
			return tenant.RateLimit
		}
	}

	return 1000 // requests per minute
}
