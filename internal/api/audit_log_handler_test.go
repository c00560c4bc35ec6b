package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/service"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
)

type AuditLogHandlerTestSuite struct {
	suite.Suite
	mockService *MockAuditService
	handler     *AuditLogHandler
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) GetByID(ctx context.Context, tenantID, id string) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditService) List(ctx context.Context, filter *domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

func (s *AuditLogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockAuditService)
	s.handler = NewAuditLogHandler(s.mockService)
}

func TestAuditLogHandler(t *testing.T) {
	suite.Run(t, new(AuditLogHandlerTestSuite))
}

// authorize mimics the auth middleware setting claims on the gin context.
func authorize(c *gin.Context, userID, tenantID string) {
	c.Set(string(utils.ClaimsKey), jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
	})
}

func (s *AuditLogHandlerTestSuite) TestListEntries_Success() {
	// Arrange
	expected := []domain.AuditLogEntry{
		{ID: "entry1", TenantID: "tenant1", Action: domain.ActionCreate},
		{ID: "entry2", TenantID: "tenant1", Action: domain.ActionUpdate},
	}
	s.mockService.On("List", mock.Anything, mock.AnythingOfType("*domain.AuditLogFilter")).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/audit-logs?action=UPDATE&start_time=2026-08-01", nil)
	authorize(c, "manager1", "tenant1")

	// Act
	s.handler.ListEntries(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response []domain.AuditLogEntry
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Len(response, 2)

	filter := s.mockService.Calls[0].Arguments.Get(1).(*domain.AuditLogFilter)
	s.Equal("tenant1", filter.TenantID)
	s.Equal(domain.ActionUpdate, filter.Action)
	s.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), filter.StartTime)
}

func (s *AuditLogHandlerTestSuite) TestListEntries_NoTenantContext() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/audit-logs", nil)

	// Act
	s.handler.ListEntries(c)

	// Assert
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "List")
}

func (s *AuditLogHandlerTestSuite) TestListEntries_BadTimeFilter() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/audit-logs?end_time=tomorrow", nil)
	authorize(c, "manager1", "tenant1")

	// Act
	s.handler.ListEntries(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "List")
}

func (s *AuditLogHandlerTestSuite) TestListEntries_Forbidden() {
	// Arrange
	s.mockService.On("List", mock.Anything, mock.AnythingOfType("*domain.AuditLogFilter")).
		Return(nil, service.ErrPermissionDenied)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/audit-logs", nil)
	authorize(c, "customer1", "tenant1")

	// Act
	s.handler.ListEntries(c)

	// Assert
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AuditLogHandlerTestSuite) TestGetEntry_Success() {
	// Arrange
	expected := &domain.AuditLogEntry{ID: "entry1", TenantID: "tenant1", Action: domain.ActionDelete}
	s.mockService.On("GetByID", mock.Anything, "tenant1", "entry1").Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/audit-logs/entry1", nil)
	c.Params = gin.Params{{Key: "id", Value: "entry1"}}
	authorize(c, "manager1", "tenant1")

	// Act
	s.handler.GetEntry(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response domain.AuditLogEntry
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("entry1", response.ID)
	s.mockService.AssertExpectations(s.T())
}

func (s *AuditLogHandlerTestSuite) TestGetEntry_NotFound() {
	// Arrange
	s.mockService.On("GetByID", mock.Anything, "tenant1", "ghost").Return(nil, service.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/audit-logs/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	authorize(c, "manager1", "tenant1")

	// Act
	s.handler.GetEntry(c)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
}
