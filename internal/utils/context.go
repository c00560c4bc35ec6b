package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ClaimsKey   ContextKey = "claims"
	TenantIDKey ContextKey = "tenant_id"
	UserIDKey   ContextKey = "user_id"
)

var (
	ErrNoClaimsInContext   = errors.New("no claims found in context")
	ErrNoTenantIDInClaims  = errors.New("no tenant_id found in claims")
	ErrNoUserIDInClaims    = errors.New("no user_id found in claims")
	ErrInvalidTenantIDType = errors.New("tenant_id must be a string")
	ErrInvalidUserIDType   = errors.New("user_id must be a string")
)

// GetTenantIDFromContext returns the caller's active tenant context. The value
// is set once per request by the auth middleware; everything downstream reads
// it from here instead of re-parsing the token.
func GetTenantIDFromContext(c context.Context) (string, error) {
	claims, exists := c.Value(ClaimsKey).(jwt.MapClaims)
	if !exists {
		return "", ErrNoClaimsInContext
	}

	tenantID, exists := claims[string(TenantIDKey)]
	if !exists {
		return "", ErrNoTenantIDInClaims
	}

	tenantIDStr, ok := tenantID.(string)
	if !ok {
		return "", ErrInvalidTenantIDType
	}

	return tenantIDStr, nil
}

// GetUserIDFromContext returns the opaque caller identity supplied by the
// identity provider.
func GetUserIDFromContext(c context.Context) (string, error) {
	claims, exists := c.Value(ClaimsKey).(jwt.MapClaims)
	if !exists {
		return "", ErrNoClaimsInContext
	}

	userID, exists := claims[string(UserIDKey)]
	if !exists {
		return "", ErrNoUserIDInClaims
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", ErrInvalidUserIDType
	}

	return userIDStr, nil
}
