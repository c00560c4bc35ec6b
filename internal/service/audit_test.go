package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/mocks"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
)

// actorContext builds a request context carrying the given identity, the way
// the auth middleware does for real requests.
func actorContext(userID, tenantID string) context.Context {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
	}
	return context.WithValue(context.Background(), utils.ClaimsKey, claims)
}

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo       *mocks.Repository
	mockAuditLog   *mocks.AuditLogRepository
	mockOpenSearch *mocks.OpenSearchRepository
	mockMembership *mocks.MembershipRepository
	mockProfile    *mocks.ProfileRepository
	mockSQS        *mocks.SQSService
	service        *AuditService
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockAuditLog = new(mocks.AuditLogRepository)
	s.mockOpenSearch = new(mocks.OpenSearchRepository)
	s.mockMembership = new(mocks.MembershipRepository)
	s.mockProfile = new(mocks.ProfileRepository)
	s.mockSQS = new(mocks.SQSService)

	s.mockRepo.On("AuditLog").Return(s.mockAuditLog)
	s.mockRepo.On("OpenSearch").Return(s.mockOpenSearch)
	s.mockRepo.On("Membership").Return(s.mockMembership)
	s.mockRepo.On("Profile").Return(s.mockProfile)

	s.service = NewAuditService(s.mockRepo, s.mockSQS)
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

// allowManager makes userID a manager of tenantID and not a super admin.
func (s *AuditServiceTestSuite) allowManager(tenantID, userID string) {
	s.mockProfile.On("GetByID", mock.Anything, userID).
		Return(&domain.Profile{ID: userID}, nil).Maybe()
	s.mockMembership.On("GetByTenantAndUser", mock.Anything, tenantID, userID).
		Return(&domain.Membership{TenantID: tenantID, UserID: userID, Role: domain.RoleManager, Active: true}, nil).Maybe()
}

func (s *AuditServiceTestSuite) TestGetByID_Success() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.allowManager("tenant1", "manager1")

	expected := &domain.AuditLogEntry{ID: "entry1", TenantID: "tenant1", Action: domain.ActionUpdate}
	s.mockAuditLog.On("GetByID", ctx, "entry1").Return(expected, nil)

	// Act
	entry, err := s.service.GetByID(ctx, "tenant1", "entry1")

	// Assert
	s.NoError(err)
	s.Equal(expected, entry)
	s.mockAuditLog.AssertExpectations(s.T())
}

func (s *AuditServiceTestSuite) TestGetByID_CrossTenantReadsAsNotFound() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.allowManager("tenant1", "manager1")

	s.mockAuditLog.On("GetByID", ctx, "entry1").
		Return(&domain.AuditLogEntry{ID: "entry1", TenantID: "other-tenant"}, nil)

	// Act
	entry, err := s.service.GetByID(ctx, "tenant1", "entry1")

	// Assert
	s.ErrorIs(err, ErrNotFound)
	s.Nil(entry)
}

func (s *AuditServiceTestSuite) TestGetByID_MissingEntry() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.allowManager("tenant1", "manager1")

	s.mockAuditLog.On("GetByID", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	// Act
	_, err := s.service.GetByID(ctx, "tenant1", "ghost")

	// Assert
	s.ErrorIs(err, ErrNotFound)
}

func (s *AuditServiceTestSuite) TestGetByID_CustomerDenied() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.mockProfile.On("GetByID", mock.Anything, "customer1").
		Return(&domain.Profile{ID: "customer1"}, nil)
	s.mockMembership.On("GetByTenantAndUser", mock.Anything, "tenant1", "customer1").
		Return(&domain.Membership{TenantID: "tenant1", UserID: "customer1", Role: domain.RoleCustomer, Active: true}, nil)

	// Act
	_, err := s.service.GetByID(ctx, "tenant1", "entry1")

	// Assert
	s.ErrorIs(err, ErrPermissionDenied)
	s.mockAuditLog.AssertNotCalled(s.T(), "GetByID")
}

func (s *AuditServiceTestSuite) TestGetByID_AnonymousDenied() {
	// Act
	_, err := s.service.GetByID(context.Background(), "tenant1", "entry1")

	// Assert
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *AuditServiceTestSuite) TestList_RequiresTenantID() {
	// Act
	_, err := s.service.List(actorContext("manager1", ""), &domain.AuditLogFilter{})

	// Assert
	s.ErrorIs(err, ErrValidation)
}

func (s *AuditServiceTestSuite) TestList_PlainPaginationUsesPrimaryStore() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.allowManager("tenant1", "manager1")

	filter := &domain.AuditLogFilter{TenantID: "tenant1"}
	expected := []domain.AuditLogEntry{{ID: "entry1", TenantID: "tenant1"}}
	s.mockAuditLog.On("List", ctx, mock.AnythingOfType("domain.AuditLogFilter")).Return(expected, nil)

	// Act
	entries, err := s.service.List(ctx, filter)

	// Assert
	s.NoError(err)
	s.Equal(expected, entries)
	s.Equal(1, filter.Page)
	s.Equal(10, filter.PageSize)
	s.Equal(0, filter.Offset)
	s.mockOpenSearch.AssertNotCalled(s.T(), "Search")
}

func (s *AuditServiceTestSuite) TestList_FieldFiltersUseSearchIndex() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.allowManager("tenant1", "manager1")

	filter := &domain.AuditLogFilter{TenantID: "tenant1", Action: domain.ActionDelete}
	expected := []domain.AuditLogEntry{{ID: "entry1", TenantID: "tenant1", Action: domain.ActionDelete}}
	s.mockOpenSearch.On("Search", ctx, filter).Return(expected, nil)

	// Act
	entries, err := s.service.List(ctx, filter)

	// Assert
	s.NoError(err)
	s.Equal(expected, entries)
	s.mockAuditLog.AssertNotCalled(s.T(), "List")
}

func (s *AuditServiceTestSuite) TestList_TimeRangeUsesSearchIndex() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.allowManager("tenant1", "manager1")

	filter := &domain.AuditLogFilter{
		TenantID:  "tenant1",
		StartTime: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	s.mockOpenSearch.On("Search", ctx, filter).Return([]domain.AuditLogEntry{}, nil)

	// Act
	_, err := s.service.List(ctx, filter)

	// Assert
	s.NoError(err)
	s.mockOpenSearch.AssertExpectations(s.T())
}

func (s *AuditServiceTestSuite) TestRequestArchive() {
	// Arrange
	ctx := context.Background()
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mockSQS.On("SendArchiveMessage", ctx, "tenant1", before).Return(nil)

	// Act
	err := s.service.RequestArchive(ctx, "tenant1", before)

	// Assert
	s.NoError(err)
	s.mockSQS.AssertExpectations(s.T())
}

func (s *AuditServiceTestSuite) TestRequestCleanup() {
	// Arrange
	ctx := context.Background()
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mockSQS.On("SendCleanupMessage", ctx, "tenant1", before).Return(nil)

	// Act
	err := s.service.RequestCleanup(ctx, "tenant1", before)

	// Assert
	s.NoError(err)
	s.mockSQS.AssertExpectations(s.T())
}
