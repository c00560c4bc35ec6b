package service

import (
	"context"
	"fmt"
	"time"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
	"github.com/filippocalippo/vittoria-order-api/pkg/utils"
)

// Windows closed this long ago can never be consulted again and are reaped
// inline on each check.
const windowRetention = 24 * time.Hour

// RateLimitService is the database-backed fixed-window limiter guarding the
// abuse-prone entry points (joining a tenant, placing orders). It is distinct
// from the Redis middleware limiter: this one survives restarts and is shared
// by every API instance through the primary store.
type RateLimitService struct {
	repo          repository.PostgresRepository
	logger        *logger.Logger
	windowMinutes int
}

func NewRateLimitService(repo repository.PostgresRepository, logger *logger.Logger, windowMinutes int) *RateLimitService {
	if windowMinutes <= 0 {
		windowMinutes = 60
	}
	return &RateLimitService{
		repo:          repo,
		logger:        logger,
		windowMinutes: windowMinutes,
	}
}

// CheckAndIncrement spends one unit of the caller's budget for the endpoint.
// The count-and-increment is a single atomic statement, so concurrent callers
// can never jointly exceed max. A denied call does not advance the counter.
// windowMinutes <= 0 falls back to the service default.
func (s *RateLimitService) CheckAndIncrement(ctx context.Context, identifier, endpoint string, max, windowMinutes int) (*domain.RateLimitDecision, error) {
	if windowMinutes <= 0 {
		windowMinutes = s.windowMinutes
	}
	windowStart := utils.WindowStart(time.Now(), windowMinutes)
	windowEnd := windowStart.Add(time.Duration(windowMinutes) * time.Minute)

	count, incremented, err := s.repo.RateLimit().IncrementWindow(ctx, identifier, endpoint, windowStart, windowEnd, max)
	if err != nil {
		return nil, fmt.Errorf("failed to advance rate limit window: %w", err)
	}

	// Reap long-closed windows while we are here, so the table stays bounded
	// even when the cleanup worker is not running. Best effort: a failed purge
	// never fails the check.
	if _, err := s.repo.RateLimit().PurgeBefore(ctx, time.Now().Add(-windowRetention)); err != nil {
		s.logger.Error("failed to purge expired rate limit windows", err)
	}

	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}

	return &domain.RateLimitDecision{
		Allowed:   incremented,
		Remaining: remaining,
		ResetAt:   windowEnd,
	}, nil
}

// Enforce is CheckAndIncrement with denial folded into the error. Callers that
// do not surface limiter headers use this form.
func (s *RateLimitService) Enforce(ctx context.Context, identifier, endpoint string, max int) (*domain.RateLimitDecision, error) {
	decision, err := s.CheckAndIncrement(ctx, identifier, endpoint, max, s.windowMinutes)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return decision, ErrRateLimited
	}
	return decision, nil
}

// PurgeExpired removes windows that closed before the cutoff. Old rows are
// never consulted again; the cleanup worker calls this on its schedule.
func (s *RateLimitService) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.RateLimit().PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge rate limit windows: %w", err)
	}
	return deleted, nil
}
