package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/mocks"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockRepo         *mocks.Repository
	mockTenant       *mocks.TenantRepository
	mockMembership   *mocks.MembershipRepository
	mockProfile      *mocks.ProfileRepository
	mockOrder        *mocks.OrderRepository
	mockCounter      *mocks.DailyCounterRepository
	mockRateLimit    *mocks.RateLimitRepository
	mockAuditLog     *mocks.AuditLogRepository
	mockNotification *mocks.NotificationRepository
	mockPayment      *mocks.PaymentRepository
	mockSQS          *mocks.SQSService
	mockPublisher    *mocks.OrderEventPublisher
	service          *OrderService
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockMembership = new(mocks.MembershipRepository)
	s.mockProfile = new(mocks.ProfileRepository)
	s.mockOrder = new(mocks.OrderRepository)
	s.mockCounter = new(mocks.DailyCounterRepository)
	s.mockRateLimit = new(mocks.RateLimitRepository)
	s.mockAuditLog = new(mocks.AuditLogRepository)
	s.mockNotification = new(mocks.NotificationRepository)
	s.mockPayment = new(mocks.PaymentRepository)
	s.mockSQS = new(mocks.SQSService)
	s.mockPublisher = new(mocks.OrderEventPublisher)

	s.mockRepo.On("Tenant").Return(s.mockTenant)
	s.mockRepo.On("Membership").Return(s.mockMembership)
	s.mockRepo.On("Profile").Return(s.mockProfile)
	s.mockRepo.On("Order").Return(s.mockOrder)
	s.mockRepo.On("DailyCounter").Return(s.mockCounter)
	s.mockRepo.On("RateLimit").Return(s.mockRateLimit)
	s.mockRepo.On("AuditLog").Return(s.mockAuditLog)
	s.mockRepo.On("Notification").Return(s.mockNotification)
	s.mockRepo.On("Payment").Return(s.mockPayment)
	s.mockRepo.On("Atomic", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(repository.PostgresRepository) error) error {
			return fn(s.mockRepo)
		}).Maybe()

	s.mockSQS.On("SendIndexMessage", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.mockSQS.On("SendNotifyMessage", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.mockRateLimit.On("PurgeBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil).Maybe()

	rateLimitSvc := NewRateLimitService(s.mockRepo, logger.NewLogger("test"), 60)
	s.service = NewOrderService(s.mockRepo, rateLimitSvc, s.mockSQS, logger.NewLogger("test"), 30)
	s.service.SetPublisher(s.mockPublisher)
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) profile(userID string) {
	s.mockProfile.On("GetByID", mock.Anything, userID).
		Return(&domain.Profile{ID: userID}, nil).Maybe()
}

func (s *OrderServiceTestSuite) member(tenantID, userID string, role domain.Role) {
	s.profile(userID)
	s.mockMembership.On("GetByTenantAndUser", mock.Anything, tenantID, userID).
		Return(&domain.Membership{TenantID: tenantID, UserID: userID, Role: role, Active: true}, nil).Maybe()
}

func (s *OrderServiceTestSuite) allowRate(identifier string) {
	s.mockRateLimit.On("IncrementWindow", mock.Anything, identifier, "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 30).
		Return(1, true, nil).Maybe()
}

func (s *OrderServiceTestSuite) activeTenant(tenantID string) {
	s.mockTenant.On("GetByID", mock.Anything, tenantID).
		Return(&domain.Tenant{ID: tenantID, Active: true}, nil).Maybe()
}

func validItems() []dto.OrderItemRequest {
	return []dto.OrderItemRequest{
		{Name: "Margherita", UnitPrice: 8.50, Quantity: 2},
		{Name: "Coke", UnitPrice: 2.50, Quantity: 1},
	}
}

func (s *OrderServiceTestSuite) TestPlaceOrder_CustomerSuccess() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)
	s.allowRate("customer1")
	s.activeTenant("tenant1")

	s.mockCounter.On("NextNumber", mock.Anything, "tenant1", mock.AnythingOfType("time.Time")).
		Return(7, nil)
	s.mockOrder.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	// Act
	resp, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{Items: validItems()})

	// Assert
	s.NoError(err)
	order := resp.Order
	s.Equal("tenant1", order.TenantID)
	s.Equal("customer1", *order.CustomerID)
	s.Equal(domain.OrderStatusPending, order.Status)
	s.Equal(domain.OrderTypePickup, order.Type)
	s.Equal(domain.PaymentMethodCash, order.PaymentMethod)
	s.InDelta(19.50, order.Total, 0.001)
	s.Equal(fmt.Sprintf("%s-007", time.Now().UTC().Format("20060102")), order.OrderNumber)
	s.Empty(resp.PaymentTransactionID)
	s.mockPayment.AssertNotCalled(s.T(), "Create")
	s.mockAuditLog.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestPlaceOrder_OnlinePaymentOpensTransaction() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)
	s.allowRate("customer1")
	s.activeTenant("tenant1")

	s.mockCounter.On("NextNumber", mock.Anything, "tenant1", mock.AnythingOfType("time.Time")).
		Return(1, nil)
	s.mockOrder.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	var payment *domain.PaymentTransaction
	s.mockPayment.On("Create", mock.Anything, mock.AnythingOfType("*domain.PaymentTransaction")).
		Run(func(args mock.Arguments) {
			payment = args.Get(1).(*domain.PaymentTransaction)
		}).
		Return(nil)

	// Act
	resp, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{
		PaymentMethod: domain.PaymentMethodOnline,
		Items:         validItems(),
	})

	// Assert
	s.NoError(err)
	s.Equal(payment.ID, resp.PaymentTransactionID)
	s.Equal(domain.PaymentPending, payment.Status)
	s.Equal("online", payment.Provider)
	s.InDelta(19.50, payment.Amount, 0.001)
}

func (s *OrderServiceTestSuite) TestPlaceOrder_StaffWalkIn() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)
	s.allowRate("kitchen1")
	s.activeTenant("tenant1")

	s.mockCounter.On("NextNumber", mock.Anything, "tenant1", mock.AnythingOfType("time.Time")).
		Return(2, nil)
	s.mockOrder.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	// Act: staff order with no customer attached.
	resp, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{
		Type:  domain.OrderTypeCounter,
		Items: validItems(),
	})

	// Assert
	s.NoError(err)
	s.Nil(resp.Order.CustomerID)
}

func (s *OrderServiceTestSuite) TestPlaceOrder_DeliveryFeeOnlyForDelivery() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)
	s.allowRate("customer1")
	s.activeTenant("tenant1")

	s.mockCounter.On("NextNumber", mock.Anything, "tenant1", mock.AnythingOfType("time.Time")).
		Return(1, nil)
	s.mockOrder.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	// Act: pickup order trying to sneak in a delivery fee.
	resp, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{
		Type:        domain.OrderTypePickup,
		DeliveryFee: 5.00,
		Items:       validItems(),
	})

	// Assert
	s.NoError(err)
	s.Zero(resp.Order.DeliveryFee)
	s.InDelta(19.50, resp.Order.Total, 0.001)
}

func (s *OrderServiceTestSuite) TestPlaceOrder_ValidatesItems() {
	ctx := actorContext("customer1", "tenant1")

	_, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{})
	s.ErrorIs(err, ErrValidation)

	_, err = s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{Name: "", UnitPrice: 5, Quantity: 1}},
	})
	s.ErrorIs(err, ErrValidation)

	_, err = s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{Name: "Margherita", UnitPrice: 5, Quantity: 0}},
	})
	s.ErrorIs(err, ErrValidation)

	_, err = s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{{Name: "Margherita", UnitPrice: -1, Quantity: 1}},
	})
	s.ErrorIs(err, ErrValidation)
}

func (s *OrderServiceTestSuite) TestPlaceOrder_RateLimited() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)
	s.mockRateLimit.On("IncrementWindow", mock.Anything, "customer1", "order",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 30).
		Return(30, false, nil)

	// Act
	_, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{Items: validItems()})

	// Assert: denial happens before the transaction opens.
	s.ErrorIs(err, ErrRateLimited)
	s.mockOrder.AssertNotCalled(s.T(), "Create")
}

func (s *OrderServiceTestSuite) TestPlaceOrder_DeactivatedTenant() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)
	s.allowRate("customer1")
	s.mockTenant.On("GetByID", mock.Anything, "tenant1").
		Return(&domain.Tenant{ID: "tenant1", Active: false}, nil)

	// Act
	_, err := s.service.PlaceOrder(ctx, dto.PlaceOrderRequest{Items: validItems()})

	// Assert
	s.ErrorIs(err, ErrPreconditionFailed)
	s.mockCounter.AssertNotCalled(s.T(), "NextNumber")
}

func (s *OrderServiceTestSuite) TestUpdateStatus_StaffForwardStep() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)

	customerID := "customer1"
	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusConfirmed}, nil)
	s.mockOrder.On("UpdateStatus", mock.Anything, "order1", domain.OrderStatusPreparing).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	var notification *domain.Notification
	s.mockNotification.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			notification = args.Get(1).(*domain.Notification)
		}).
		Return(nil)

	// Act
	updated, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusPreparing)

	// Assert
	s.NoError(err)
	s.Equal(domain.OrderStatusPreparing, updated.Status)
	s.Equal("customer1", notification.UserID)
	s.Equal(domain.NotificationPending, notification.Status)
	s.mockAuditLog.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestUpdateStatus_SameStateIsSilentNoOp() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", Status: domain.OrderStatusPreparing}, nil)

	// Act
	updated, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusPreparing)

	// Assert: no write, no audit entry, no notification, no event.
	s.NoError(err)
	s.Equal(domain.OrderStatusPreparing, updated.Status)
	s.mockOrder.AssertNotCalled(s.T(), "UpdateStatus")
	s.mockAuditLog.AssertNotCalled(s.T(), "Create")
	s.mockNotification.AssertNotCalled(s.T(), "Create")
	s.mockPublisher.AssertNotCalled(s.T(), "Publish")
}

func (s *OrderServiceTestSuite) TestUpdateStatus_KitchenCannotSkipSteps() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", Status: domain.OrderStatusPending}, nil)

	// Act
	_, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusReady)

	// Assert
	s.ErrorIs(err, ErrPreconditionFailed)
	s.mockOrder.AssertNotCalled(s.T(), "UpdateStatus")
}

func (s *OrderServiceTestSuite) TestUpdateStatus_ManagerOverridesIllegalJump() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.member("tenant1", "manager1", domain.RoleManager)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", Status: domain.OrderStatusCompleted}, nil)
	s.mockOrder.On("UpdateStatus", mock.Anything, "order1", domain.OrderStatusPreparing).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	// Act: reopening a completed order is an admin correction.
	updated, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusPreparing)

	// Assert
	s.NoError(err)
	s.Equal(domain.OrderStatusPreparing, updated.Status)
}

func (s *OrderServiceTestSuite) TestUpdateStatus_KitchenCannotReopenTerminal() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", Status: domain.OrderStatusCompleted}, nil)

	// Act
	_, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusPreparing)

	// Assert
	s.ErrorIs(err, ErrPreconditionFailed)
}

func (s *OrderServiceTestSuite) TestUpdateStatus_OwnerCancelsConfirmedOrder() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)

	customerID := "customer1"
	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusConfirmed}, nil)
	s.mockOrder.On("UpdateStatus", mock.Anything, "order1", domain.OrderStatusCancelled).Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
	s.mockNotification.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	// Act
	updated, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusCancelled)

	// Assert
	s.NoError(err)
	s.Equal(domain.OrderStatusCancelled, updated.Status)
}

func (s *OrderServiceTestSuite) TestUpdateStatus_OwnerCannotCancelPreparing() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)

	customerID := "customer1"
	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusPreparing}, nil)

	// Act
	_, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusCancelled)

	// Assert: past the cutoff the customer needs staff help.
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *OrderServiceTestSuite) TestUpdateStatus_CustomerCannotAdvance() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)

	customerID := "customer1"
	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusPending}, nil)

	// Act
	_, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusConfirmed)

	// Assert
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *OrderServiceTestSuite) TestUpdateStatus_CrossTenantReadsAsNotFound() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "other-tenant", Status: domain.OrderStatusPending}, nil)

	// Act
	_, err := s.service.UpdateStatus(ctx, "order1", domain.OrderStatusConfirmed)

	// Assert
	s.ErrorIs(err, ErrNotFound)
}

func (s *OrderServiceTestSuite) TestCancelOwnOrder_Success() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	customerID := "customer1"

	s.mockOrder.On("CancelPendingOwnedBy", mock.Anything, "order1", "customer1").
		Return(int64(1), nil)
	s.mockOrder.On("GetByID", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusCancelled}, nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
	s.mockNotification.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	// Act
	cancelled, err := s.service.CancelOwnOrder(ctx, "order1")

	// Assert
	s.NoError(err)
	s.Equal(domain.OrderStatusCancelled, cancelled.Status)
	s.mockAuditLog.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestCancelOwnOrder_NotOwner() {
	// Arrange
	ctx := actorContext("customer2", "tenant1")
	customerID := "customer1"

	s.mockOrder.On("CancelPendingOwnedBy", mock.Anything, "order1", "customer2").
		Return(int64(0), nil)
	s.mockOrder.On("GetByID", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusPending}, nil)

	// Act
	_, err := s.service.CancelOwnOrder(ctx, "order1")

	// Assert
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *OrderServiceTestSuite) TestCancelOwnOrder_NoLongerPending() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	customerID := "customer1"

	s.mockOrder.On("CancelPendingOwnedBy", mock.Anything, "order1", "customer1").
		Return(int64(0), nil)
	s.mockOrder.On("GetByID", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID, Status: domain.OrderStatusPreparing}, nil)

	// Act
	_, err := s.service.CancelOwnOrder(ctx, "order1")

	// Assert
	s.ErrorIs(err, ErrPreconditionFailed)
}

func (s *OrderServiceTestSuite) TestCancelOwnOrder_MissingOrder() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")

	s.mockOrder.On("CancelPendingOwnedBy", mock.Anything, "ghost", "customer1").
		Return(int64(0), nil)
	s.mockOrder.On("GetByID", mock.Anything, "ghost").
		Return(nil, gorm.ErrRecordNotFound)

	// Act
	_, err := s.service.CancelOwnOrder(ctx, "ghost")

	// Assert
	s.ErrorIs(err, ErrNotFound)
}

func (s *OrderServiceTestSuite) TestVerifyPayment_Success() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.member("tenant1", "manager1", domain.RoleManager)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", Status: domain.OrderStatusConfirmed}, nil)
	s.mockPayment.On("GetByOrderID", mock.Anything, "order1").
		Return(&domain.PaymentTransaction{ID: "pay1", OrderID: "order1", Status: domain.PaymentPending}, nil)
	s.mockPayment.On("MarkVerified", mock.Anything, "pay1", "gateway-ref-42").Return(nil)
	s.mockOrder.On("MarkPaid", mock.Anything, "order1").Return(nil)
	s.mockAuditLog.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

	// Act
	err := s.service.VerifyPayment(ctx, "order1", "gateway-ref-42")

	// Assert
	s.NoError(err)
	s.mockPayment.AssertExpectations(s.T())
	s.mockAuditLog.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestVerifyPayment_AlreadyVerified() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.member("tenant1", "manager1", domain.RoleManager)

	s.mockOrder.On("GetByIDForUpdate", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1"}, nil)
	s.mockPayment.On("GetByOrderID", mock.Anything, "order1").
		Return(&domain.PaymentTransaction{ID: "pay1", OrderID: "order1", Status: domain.PaymentVerified}, nil)

	// Act
	err := s.service.VerifyPayment(ctx, "order1", "gateway-ref-42")

	// Assert
	s.ErrorIs(err, ErrPreconditionFailed)
	s.mockPayment.AssertNotCalled(s.T(), "MarkVerified")
	s.mockOrder.AssertNotCalled(s.T(), "MarkPaid")
}

func (s *OrderServiceTestSuite) TestVerifyPayment_KitchenDenied() {
	// Arrange
	ctx := actorContext("kitchen1", "tenant1")
	s.member("tenant1", "kitchen1", domain.RoleKitchen)

	// Act
	err := s.service.VerifyPayment(ctx, "order1", "gateway-ref-42")

	// Assert
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *OrderServiceTestSuite) TestVerifyPayment_RequiresReference() {
	ctx := actorContext("manager1", "tenant1")

	err := s.service.VerifyPayment(ctx, "order1", "")
	s.ErrorIs(err, ErrValidation)
}

func (s *OrderServiceTestSuite) TestGetOrder_OwnerReads() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)

	customerID := "customer1"
	s.mockOrder.On("GetByID", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID}, nil)

	// Act
	order, err := s.service.GetOrder(ctx, "order1")

	// Assert
	s.NoError(err)
	s.Equal("order1", order.ID)
}

func (s *OrderServiceTestSuite) TestGetOrder_StrangerSeesNothing() {
	// Arrange
	ctx := actorContext("customer2", "tenant1")
	s.member("tenant1", "customer2", domain.RoleCustomer)

	customerID := "customer1"
	s.mockOrder.On("GetByID", mock.Anything, "order1").
		Return(&domain.Order{ID: "order1", TenantID: "tenant1", CustomerID: &customerID}, nil)

	// Act
	_, err := s.service.GetOrder(ctx, "order1")

	// Assert
	s.ErrorIs(err, ErrNotFound)
}

func (s *OrderServiceTestSuite) TestListOrders_CustomerSeesOnlyOwn() {
	// Arrange
	ctx := actorContext("customer1", "tenant1")
	s.member("tenant1", "customer1", domain.RoleCustomer)

	var captured domain.OrderFilter
	s.mockOrder.On("List", mock.Anything, mock.AnythingOfType("domain.OrderFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.OrderFilter)
		}).
		Return([]domain.Order{}, nil)

	// Act: the customer asks for everyone's orders; the filter is overridden.
	_, err := s.service.ListOrders(ctx, domain.OrderFilter{CustomerID: ""})

	// Assert
	s.NoError(err)
	s.Equal("customer1", captured.CustomerID)
	s.Equal("tenant1", captured.TenantID)
	s.Equal(1, captured.Page)
	s.Equal(20, captured.PageSize)
	s.Equal(20, captured.Limit)
	s.Equal(0, captured.Offset)
}

func (s *OrderServiceTestSuite) TestListOrders_StaffSeesTenantWide() {
	// Arrange
	ctx := actorContext("manager1", "tenant1")
	s.member("tenant1", "manager1", domain.RoleManager)

	var captured domain.OrderFilter
	s.mockOrder.On("List", mock.Anything, mock.AnythingOfType("domain.OrderFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.OrderFilter)
		}).
		Return([]domain.Order{}, nil)

	// Act
	_, err := s.service.ListOrders(ctx, domain.OrderFilter{Page: 2, PageSize: 10})

	// Assert
	s.NoError(err)
	s.Empty(captured.CustomerID)
	s.Equal(10, captured.Offset)
}

func (s *OrderServiceTestSuite) TestListOrders_NonMemberDenied() {
	// Arrange
	ctx := actorContext("stranger", "tenant1")
	s.profile("stranger")
	s.mockMembership.On("GetByTenantAndUser", mock.Anything, "tenant1", "stranger").
		Return(nil, gorm.ErrRecordNotFound)

	// Act
	_, err := s.service.ListOrders(ctx, domain.OrderFilter{})

	// Assert
	s.ErrorIs(err, ErrPermissionDenied)
	s.mockOrder.AssertNotCalled(s.T(), "List")
}
