package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

// ProfileBootstrapper is the auth-time slice of the directory service:
// get-or-create the caller's profile on first sight.
type ProfileBootstrapper interface {
	EnsureProfile(ctx context.Context, userID, email, displayName string) (*domain.Profile, error)
}

type AuthMiddleware struct {
	config    *config.Config
	directory ProfileBootstrapper
	logger    *logger.Logger
}

func NewAuthMiddleware(config *config.Config, directory ProfileBootstrapper, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		config:    config,
		directory: directory,
		logger:    logger,
	}
}

func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := bearerToken[1]
		claims := jwt.MapClaims{}

		_, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (any, error) {
			return []byte(m.config.JWTSecretKey), nil
		})

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, _ := claims[string(utils.UserIDKey)].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token carries no user identity"})
			c.Abort()
			return
		}

		// Set claims in context
		c.Set(string(utils.TenantIDKey), claims["tenant_id"])
		c.Set(string(utils.UserIDKey), userID)
		c.Set(string(utils.ClaimsKey), claims)

		// First sight of an identity creates its profile (and default-tenant
		// enrollment). Failure is logged, not fatal: the next request retries.
		if m.directory != nil {
			email, _ := claims["email"].(string)
			displayName, _ := claims["name"].(string)
			ctx := context.WithValue(c.Request.Context(), utils.ClaimsKey, claims)
			if _, err := m.directory.EnsureProfile(ctx, userID, email, displayName); err != nil {
				m.logger.Error("profile bootstrap failed", err)
			}
		}

		c.Next()
	}
}

func (m *AuthMiddleware) GenerateToken(userID, tenantID string, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
		"email":     email,
		"exp":       time.Now().Add(time.Duration(m.config.JWTExpirationHours) * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.JWTSecretKey))
}
