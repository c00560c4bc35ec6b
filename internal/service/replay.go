package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
)

// ReplayService verifies the HMAC signature on mutating edge requests and
// consumes their nonces. Verification order matters: the signature is checked
// before the nonce is inserted, so unsigned garbage cannot fill the nonce
// table.
type ReplayService struct {
	repo     repository.PostgresRepository
	skew     time.Duration
	nonceTTL time.Duration
}

func NewReplayService(repo repository.PostgresRepository, skewSeconds, nonceTTLMinutes int) *ReplayService {
	return &ReplayService{
		repo:     repo,
		skew:     time.Duration(skewSeconds) * time.Second,
		nonceTTL: time.Duration(nonceTTLMinutes) * time.Minute,
	}
}

// GenerateSigningSecret returns a fresh 256-bit secret, hex encoded.
func GenerateSigningSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate signing secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ComputeSignature derives the request signature: HMAC-SHA256 over the
// newline-joined method, path, timestamp, nonce and body digest. The body is
// hashed rather than embedded so the canonical string stays bounded.
func ComputeSignature(secret, method, path, timestamp, nonce string, body []byte) string {
	bodyDigest := sha256.Sum256(body)

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s\n%s\n%s\n%s\n%s", method, path, timestamp, nonce, hex.EncodeToString(bodyDigest[:]))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyAndConsume checks a signed request against the tenant's secret and
// burns its nonce. The nonce insert doubles as the replay check: the primary
// key conflict on a second presentation surfaces as ErrReplayDetected.
func (s *ReplayService) VerifyAndConsume(ctx context.Context, tenant *domain.Tenant, method, path, timestamp, nonce, signature string, body []byte) error {
	if nonce == "" || timestamp == "" || signature == "" {
		return fmt.Errorf("%w: missing signature headers", ErrInvalidSignature)
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp", ErrInvalidSignature)
	}

	now := time.Now()
	drift := now.Sub(time.Unix(ts, 0))
	if drift < 0 {
		drift = -drift
	}
	if drift > s.skew {
		return fmt.Errorf("%w: timestamp outside allowed skew", ErrInvalidSignature)
	}

	expected := ComputeSignature(tenant.SigningSecret, method, path, timestamp, nonce, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	}

	record := &domain.NonceRecord{
		Nonce:     nonce,
		TenantID:  tenant.ID,
		ExpiresAt: now.Add(s.nonceTTL),
	}
	if err := s.repo.Nonce().Insert(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReplayDetected
		}
		return fmt.Errorf("failed to consume nonce: %w", err)
	}

	return nil
}

// PurgeExpiredNonces drops consumed nonces whose expiry has passed. A nonce
// older than the accepted timestamp skew can never validate again, so keeping
// it buys nothing.
func (s *ReplayService) PurgeExpiredNonces(ctx context.Context) (int64, error) {
	deleted, err := s.repo.Nonce().PurgeExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge nonces: %w", err)
	}
	return deleted, nil
}
