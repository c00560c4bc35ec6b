package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/filippocalippo/vittoria-order-api/internal/mocks"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

type RateLimitServiceTestSuite struct {
	suite.Suite
	mockRepo      *mocks.PostgresRepository
	mockRateLimit *mocks.RateLimitRepository
	service       *RateLimitService
}

func (s *RateLimitServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.PostgresRepository)
	s.mockRateLimit = new(mocks.RateLimitRepository)

	s.mockRepo.On("RateLimit").Return(s.mockRateLimit)

	s.service = NewRateLimitService(s.mockRepo, logger.NewLogger("test"), 60)
}

func TestRateLimitService(t *testing.T) {
	suite.Run(t, new(RateLimitServiceTestSuite))
}

// allowPurge absorbs the inline reaping every successful check performs.
func (s *RateLimitServiceTestSuite) allowPurge() {
	s.mockRateLimit.On("PurgeBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil).Maybe()
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_Allowed() {
	// Arrange
	ctx := context.Background()
	s.allowPurge()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 10).
		Return(3, true, nil)

	// Act
	decision, err := s.service.CheckAndIncrement(ctx, "user1", "order", 10, 60)

	// Assert
	s.NoError(err)
	s.True(decision.Allowed)
	s.Equal(7, decision.Remaining)
	s.mockRateLimit.AssertExpectations(s.T())
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_Denied() {
	// Arrange
	ctx := context.Background()
	s.allowPurge()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "join",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 5).
		Return(5, false, nil)

	// Act
	decision, err := s.service.CheckAndIncrement(ctx, "user1", "join", 5, 60)

	// Assert: denial is a decision, not an error.
	s.NoError(err)
	s.False(decision.Allowed)
	s.Zero(decision.Remaining)
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_WindowBoundsAreAligned() {
	// Arrange
	ctx := context.Background()
	s.allowPurge()
	var gotStart, gotEnd time.Time
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 10).
		Run(func(args mock.Arguments) {
			gotStart = args.Get(3).(time.Time)
			gotEnd = args.Get(4).(time.Time)
		}).
		Return(1, true, nil)

	// Act
	_, err := s.service.CheckAndIncrement(ctx, "user1", "order", 10, 15)

	// Assert
	s.NoError(err)
	s.Equal(15*time.Minute, gotEnd.Sub(gotStart))
	s.Zero(gotStart.Minute() % 15)
	s.Zero(gotStart.Second())
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_DefaultWindow() {
	// Arrange
	ctx := context.Background()
	s.allowPurge()
	var gotStart, gotEnd time.Time
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 10).
		Run(func(args mock.Arguments) {
			gotStart = args.Get(3).(time.Time)
			gotEnd = args.Get(4).(time.Time)
		}).
		Return(1, true, nil)

	// Act: non-positive window falls back to the service default.
	_, err := s.service.CheckAndIncrement(ctx, "user1", "order", 10, 0)

	// Assert
	s.NoError(err)
	s.Equal(60*time.Minute, gotEnd.Sub(gotStart))
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_RepositoryError() {
	// Arrange
	ctx := context.Background()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 10).
		Return(0, false, errors.New("deadlock detected"))

	// Act
	decision, err := s.service.CheckAndIncrement(ctx, "user1", "order", 10, 60)

	// Assert
	s.Error(err)
	s.Nil(decision)
}

func (s *RateLimitServiceTestSuite) TestEnforce_DenialBecomesError() {
	// Arrange
	ctx := context.Background()
	s.allowPurge()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "join",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 5).
		Return(5, false, nil)

	// Act
	decision, err := s.service.Enforce(ctx, "user1", "join", 5)

	// Assert
	s.ErrorIs(err, ErrRateLimited)
	s.NotNil(decision)
	s.False(decision.Allowed)
}

func (s *RateLimitServiceTestSuite) TestEnforce_Allowed() {
	// Arrange
	ctx := context.Background()
	s.allowPurge()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "join",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 5).
		Return(1, true, nil)

	// Act
	decision, err := s.service.Enforce(ctx, "user1", "join", 5)

	// Assert
	s.NoError(err)
	s.True(decision.Allowed)
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_ReapsExpiredWindows() {
	// Arrange
	ctx := context.Background()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 10).
		Return(1, true, nil)
	var gotCutoff time.Time
	s.mockRateLimit.On("PurgeBefore", ctx, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			gotCutoff = args.Get(1).(time.Time)
		}).
		Return(int64(2), nil)

	// Act
	_, err := s.service.CheckAndIncrement(ctx, "user1", "order", 10, 60)

	// Assert: every check reaps windows that closed more than a day ago.
	s.NoError(err)
	s.WithinDuration(time.Now().Add(-24*time.Hour), gotCutoff, 5*time.Second)
	s.mockRateLimit.AssertExpectations(s.T())
}

func (s *RateLimitServiceTestSuite) TestCheckAndIncrement_PurgeFailureIsNotFatal() {
	// Arrange
	ctx := context.Background()
	s.mockRateLimit.On("IncrementWindow", ctx, "user1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 10).
		Return(2, true, nil)
	s.mockRateLimit.On("PurgeBefore", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("lock timeout"))

	// Act
	decision, err := s.service.CheckAndIncrement(ctx, "user1", "order", 10, 60)

	// Assert: reaping is best effort, the decision still stands.
	s.NoError(err)
	s.True(decision.Allowed)
	s.Equal(8, decision.Remaining)
}

func (s *RateLimitServiceTestSuite) TestPurgeExpired() {
	// Arrange
	ctx := context.Background()
	cutoff := time.Now().Add(-24 * time.Hour)
	s.mockRateLimit.On("PurgeBefore", ctx, cutoff).Return(int64(17), nil)

	// Act
	deleted, err := s.service.PurgeExpired(ctx, cutoff)

	// Assert
	s.NoError(err)
	s.Equal(int64(17), deleted)
	s.mockRateLimit.AssertExpectations(s.T())
}
