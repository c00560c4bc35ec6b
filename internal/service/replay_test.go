package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/mocks"
)

type ReplayServiceTestSuite struct {
	suite.Suite
	mockRepo  *mocks.PostgresRepository
	mockNonce *mocks.NonceRepository
	service   *ReplayService
	tenant    *domain.Tenant
}

func (s *ReplayServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.PostgresRepository)
	s.mockNonce = new(mocks.NonceRepository)

	s.mockRepo.On("Nonce").Return(s.mockNonce)

	s.service = NewReplayService(s.mockRepo, 300, 10)
	s.tenant = &domain.Tenant{
		ID:            "tenant1",
		SigningSecret: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
	}
}

func TestReplayService(t *testing.T) {
	suite.Run(t, new(ReplayServiceTestSuite))
}

func (s *ReplayServiceTestSuite) sign(method, path, timestamp, nonce string, body []byte) string {
	return ComputeSignature(s.tenant.SigningSecret, method, path, timestamp, nonce, body)
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_ValidSignature() {
	// Arrange
	ctx := context.Background()
	body := []byte(`{"type":"pickup"}`)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := s.sign("POST", "/api/v1/orders", timestamp, "nonce-1", body)

	s.mockNonce.On("Insert", ctx, mock.AnythingOfType("*domain.NonceRecord")).Return(nil)

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/api/v1/orders", timestamp, "nonce-1", signature, body)

	// Assert
	s.NoError(err)
	s.mockNonce.AssertExpectations(s.T())
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_MissingHeaders() {
	ctx := context.Background()

	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", "", "nonce-1", "sig", nil)
	s.ErrorIs(err, ErrInvalidSignature)

	err = s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", "12345", "", "sig", nil)
	s.ErrorIs(err, ErrInvalidSignature)

	err = s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", "12345", "nonce-1", "", nil)
	s.ErrorIs(err, ErrInvalidSignature)

	s.mockNonce.AssertNotCalled(s.T(), "Insert")
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_MalformedTimestamp() {
	// Arrange
	ctx := context.Background()

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", "not-a-number", "nonce-1", "sig", nil)

	// Assert
	s.ErrorIs(err, ErrInvalidSignature)
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_TimestampOutsideSkew() {
	// Arrange
	ctx := context.Background()
	body := []byte(`{}`)
	stale := fmt.Sprintf("%d", time.Now().Add(-10*time.Minute).Unix())
	signature := s.sign("POST", "/orders", stale, "nonce-1", body)

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", stale, "nonce-1", signature, body)

	// Assert: a correctly signed but stale request is rejected before the
	// nonce table is touched.
	s.ErrorIs(err, ErrInvalidSignature)
	s.mockNonce.AssertNotCalled(s.T(), "Insert")
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_FutureTimestampWithinSkew() {
	// Arrange
	ctx := context.Background()
	body := []byte(`{}`)
	ahead := fmt.Sprintf("%d", time.Now().Add(2*time.Minute).Unix())
	signature := s.sign("POST", "/orders", ahead, "nonce-1", body)

	s.mockNonce.On("Insert", ctx, mock.AnythingOfType("*domain.NonceRecord")).Return(nil)

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", ahead, "nonce-1", signature, body)

	// Assert
	s.NoError(err)
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_WrongSecret() {
	// Arrange
	ctx := context.Background()
	body := []byte(`{}`)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := ComputeSignature("wrong-secret", "POST", "/orders", timestamp, "nonce-1", body)

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", timestamp, "nonce-1", signature, body)

	// Assert
	s.ErrorIs(err, ErrInvalidSignature)
	s.mockNonce.AssertNotCalled(s.T(), "Insert")
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_TamperedBody() {
	// Arrange
	ctx := context.Background()
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := s.sign("POST", "/orders", timestamp, "nonce-1", []byte(`{"total":10}`))

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", timestamp, "nonce-1", signature, []byte(`{"total":0}`))

	// Assert
	s.ErrorIs(err, ErrInvalidSignature)
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_ReplayedNonce() {
	// Arrange
	ctx := context.Background()
	body := []byte(`{}`)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := s.sign("POST", "/orders", timestamp, "nonce-1", body)

	s.mockNonce.On("Insert", ctx, mock.AnythingOfType("*domain.NonceRecord")).Return(gorm.ErrDuplicatedKey)

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", timestamp, "nonce-1", signature, body)

	// Assert
	s.ErrorIs(err, ErrReplayDetected)
}

func (s *ReplayServiceTestSuite) TestVerifyAndConsume_NonceRecordFields() {
	// Arrange
	ctx := context.Background()
	body := []byte(`{}`)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := s.sign("POST", "/orders", timestamp, "nonce-1", body)

	var record *domain.NonceRecord
	s.mockNonce.On("Insert", ctx, mock.AnythingOfType("*domain.NonceRecord")).
		Run(func(args mock.Arguments) {
			record = args.Get(1).(*domain.NonceRecord)
		}).
		Return(nil)

	// Act
	err := s.service.VerifyAndConsume(ctx, s.tenant, "POST", "/orders", timestamp, "nonce-1", signature, body)

	// Assert
	s.NoError(err)
	s.Equal("nonce-1", record.Nonce)
	s.Equal("tenant1", record.TenantID)
	s.WithinDuration(time.Now().Add(10*time.Minute), record.ExpiresAt, 5*time.Second)
}

func TestGenerateSigningSecret(t *testing.T) {
	a, err := GenerateSigningSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateSigningSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("two generated secrets must differ")
	}
}

func TestComputeSignature_Deterministic(t *testing.T) {
	body := []byte(`{"a":1}`)

	first := ComputeSignature("secret", "POST", "/orders", "1756100000", "n1", body)
	second := ComputeSignature("secret", "POST", "/orders", "1756100000", "n1", body)
	if first != second {
		t.Error("signature must be deterministic for identical inputs")
	}

	other := ComputeSignature("secret", "PATCH", "/orders", "1756100000", "n1", body)
	if first == other {
		t.Error("signature must cover the method")
	}
}
