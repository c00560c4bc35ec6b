package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/service"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	mockService *MockOrderService
	handler     *OrderHandler
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaceOrderResponse), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, orderID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) CancelOwnOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) VerifyPayment(ctx context.Context, orderID, paymentRef string) error {
	args := m.Called(ctx, orderID, paymentRef)
	return args.Error(0)
}

func (m *MockOrderService) SetPrinted(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockOrderService)
	s.handler = NewOrderHandler(s.mockService)
}

func TestOrderHandler(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestPlaceOrder_Success() {
	// Arrange
	req := dto.PlaceOrderRequest{
		Type: domain.OrderTypePickup,
		Items: []dto.OrderItemRequest{
			{Name: "Margherita", UnitPrice: 8.50, Quantity: 2},
		},
	}
	expected := &dto.PlaceOrderResponse{
		Order: &domain.Order{ID: "order1", OrderNumber: "20260825-001", Status: domain.OrderStatusPending},
	}
	s.mockService.On("PlaceOrder", mock.Anything, req).Return(expected, nil)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.PlaceOrder(c)

	// Assert
	s.Equal(http.StatusCreated, w.Code)
	var response dto.PlaceOrderResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("order1", response.Order.ID)
	s.Equal("20260825-001", response.Order.OrderNumber)
	s.mockService.AssertExpectations(s.T())
}

func (s *OrderHandlerTestSuite) TestPlaceOrder_MissingItems() {
	// Arrange: binding:"required" rejects the empty payload before the service.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.PlaceOrder(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "PlaceOrder")
}

func (s *OrderHandlerTestSuite) TestPlaceOrder_RateLimited() {
	// Arrange
	req := dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{Name: "Margherita", UnitPrice: 8.50, Quantity: 1}},
	}
	s.mockService.On("PlaceOrder", mock.Anything, req).Return(nil, service.ErrRateLimited)

	body, _ := json.Marshal(req)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	s.handler.PlaceOrder(c)

	// Assert
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *OrderHandlerTestSuite) TestGetOrder_NotFound() {
	// Arrange
	s.mockService.On("GetOrder", mock.Anything, "ghost").Return(nil, service.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/orders/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	// Act
	s.handler.GetOrder(c)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
	var response dto.Error
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal("not_found", response.Kind)
}

func (s *OrderHandlerTestSuite) TestListOrders_Success() {
	// Arrange
	expected := []domain.Order{
		{ID: "order1", OrderNumber: "20260825-001"},
		{ID: "order2", OrderNumber: "20260825-002"},
	}
	s.mockService.On("ListOrders", mock.Anything, mock.AnythingOfType("domain.OrderFilter")).Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/orders?status=pending&page=2&page_size=5", nil)

	// Act
	s.handler.ListOrders(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response []domain.Order
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Len(response, 2)

	filter := s.mockService.Calls[0].Arguments.Get(1).(domain.OrderFilter)
	s.Equal(domain.OrderStatusPending, filter.Status)
	s.Equal(2, filter.Page)
	s.Equal(5, filter.PageSize)
}

func (s *OrderHandlerTestSuite) TestListOrders_BadStartTime() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/orders?start_time=yesterday", nil)

	// Act
	s.handler.ListOrders(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "ListOrders")
}

func (s *OrderHandlerTestSuite) TestUpdateStatus_Success() {
	// Arrange
	expected := &domain.Order{ID: "order1", Status: domain.OrderStatusConfirmed}
	s.mockService.On("UpdateStatus", mock.Anything, "order1", domain.OrderStatusConfirmed).Return(expected, nil)

	body := []byte(`{"status":"confirmed"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/orders/order1/status", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.UpdateStatus(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response domain.Order
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal(domain.OrderStatusConfirmed, response.Status)
	s.mockService.AssertExpectations(s.T())
}

func (s *OrderHandlerTestSuite) TestUpdateStatus_IllegalTransition() {
	// Arrange
	s.mockService.On("UpdateStatus", mock.Anything, "order1", domain.OrderStatusReady).
		Return(nil, service.ErrPreconditionFailed)

	body := []byte(`{"status":"ready"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/orders/order1/status", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.UpdateStatus(c)

	// Assert
	s.Equal(http.StatusPreconditionFailed, w.Code)
}

func (s *OrderHandlerTestSuite) TestCancelOrder_Success() {
	// Arrange
	expected := &domain.Order{ID: "order1", Status: domain.OrderStatusCancelled}
	s.mockService.On("CancelOwnOrder", mock.Anything, "order1").Return(expected, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders/order1/cancel", nil)
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.CancelOrder(c)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response domain.Order
	err := json.Unmarshal(w.Body.Bytes(), &response)
	s.NoError(err)
	s.Equal(domain.OrderStatusCancelled, response.Status)
}

func (s *OrderHandlerTestSuite) TestCancelOrder_NotOwner() {
	// Arrange
	s.mockService.On("CancelOwnOrder", mock.Anything, "order1").Return(nil, service.ErrPermissionDenied)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders/order1/cancel", nil)
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.CancelOrder(c)

	// Assert
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *OrderHandlerTestSuite) TestVerifyPayment_Success() {
	// Arrange
	s.mockService.On("VerifyPayment", mock.Anything, "order1", "pi_123").Return(nil)

	body := []byte(`{"payment_ref":"pi_123"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders/order1/verify-payment", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.VerifyPayment(c)
	c.Writer.WriteHeaderNow()

	// Assert
	s.Equal(http.StatusNoContent, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *OrderHandlerTestSuite) TestVerifyPayment_MissingRef() {
	// Arrange
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders/order1/verify-payment", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.VerifyPayment(c)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "VerifyPayment")
}

func (s *OrderHandlerTestSuite) TestSetPrinted_Success() {
	// Arrange
	s.mockService.On("SetPrinted", mock.Anything, "order1").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/orders/order1/printed", nil)
	c.Params = gin.Params{{Key: "id", Value: "order1"}}

	// Act
	s.handler.SetPrinted(c)
	c.Writer.WriteHeaderNow()

	// Assert
	s.Equal(http.StatusNoContent, w.Code)
}
