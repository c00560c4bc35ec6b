package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filippocalippo/vittoria-order-api/internal/access"
	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

const orderEndpoint = "order"

//go:generate mockery --name OrderEventPublisher --output ../mocks
type OrderEventPublisher interface {
	Publish(ctx context.Context, event *dto.OrderEvent) error
}

// OrderService drives the order workflow: placement with atomic per-day
// numbering, the status state machine, customer self-cancellation and payment
// verification. All state changes commit together with their audit entry and
// notification row; queue and pub/sub emission happen after commit and never
// fail the request.
type OrderService struct {
	repo           repository.Repository
	rateLimitSvc   *RateLimitService
	sqsSvc         SQSService
	publisher      OrderEventPublisher
	logger         *logger.Logger
	orderRateLimit int
}

func NewOrderService(repo repository.Repository, rateLimitSvc *RateLimitService, sqsSvc SQSService, logger *logger.Logger, orderRateLimit int) *OrderService {
	return &OrderService{
		repo:           repo,
		rateLimitSvc:   rateLimitSvc,
		sqsSvc:         sqsSvc,
		logger:         logger,
		orderRateLimit: orderRateLimit,
	}
}

// SetPublisher attaches the pub/sub fan-out. Optional; workers run without it.
func (s *OrderService) SetPublisher(publisher OrderEventPublisher) {
	s.publisher = publisher
}

// PlaceOrder validates and persists a new order. The order number comes from
// the per-tenant daily counter inside the same transaction, so two concurrent
// placements can never share a number and a failed placement never burns one
// visible to customers out of order.
func (s *OrderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: missing tenant context", ErrValidation)
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, item := range req.Items {
		if item.Name == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: invalid order item", ErrValidation)
		}
	}

	orderType := req.Type
	if orderType == "" {
		orderType = domain.OrderTypePickup
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodCash
	}

	checker := access.NewChecker(s.repo)
	isStaff := checker.IsStaff(ctx, tenantID, actorID)

	// Staff at the counter may place walk-in orders with no customer attached;
	// everyone else orders for themselves.
	customerID := &actorID
	if isStaff {
		customerID = req.CustomerID
	} else {
		if !checker.Can(ctx, tenantID, actorID, domain.CapPlaceOrders) {
			return nil, ErrPermissionDenied
		}
	}

	if _, err := s.rateLimitSvc.Enforce(ctx, actorID, orderEndpoint, s.orderRateLimit); err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		}
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	deliveryFee := 0.0
	if orderType == domain.OrderTypeDelivery {
		deliveryFee = req.DeliveryFee
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		CustomerID:    customerID,
		Type:          orderType,
		Status:        domain.OrderStatusPending,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Total:         subtotal + deliveryFee,
		DeliveryNotes: req.DeliveryNotes,
		PaymentMethod: paymentMethod,
		Items:         items,
	}

	var (
		payment *domain.PaymentTransaction
		entries []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		tenant, err := tx.Tenant().GetByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		if !tenant.Active {
			return fmt.Errorf("%w: tenant is deactivated", ErrPreconditionFailed)
		}

		now := time.Now().UTC()
		number, err := tx.DailyCounter().NextNumber(ctx, tenantID, now)
		if err != nil {
			return fmt.Errorf("failed to advance daily counter: %w", err)
		}
		order.OrderNumber = fmt.Sprintf("%s-%03d", now.Format("20060102"), number)

		if err := tx.Order().Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Non-cash methods hand off to the external gateway through a pending
		// payment transaction.
		if paymentMethod != domain.PaymentMethodCash {
			payment = &domain.PaymentTransaction{
				ID:       uuid.NewString(),
				TenantID: tenantID,
				OrderID:  order.ID,
				Provider: string(paymentMethod),
				Amount:   order.Total,
				Status:   domain.PaymentPending,
			}
			if err := tx.Payment().Create(ctx, payment); err != nil {
				return fmt.Errorf("failed to create payment transaction: %w", err)
			}
		}

		entry := newAuditEntry(ctx, tenantID, domain.ActionCreate, domain.Order{}.TableName(), order.ID, nil, order.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)
	s.publishEvent(ctx, order)

	resp := &dto.PlaceOrderResponse{Order: order}
	if payment != nil {
		resp.PaymentTransactionID = payment.ID
	}
	return resp, nil
}

// UpdateStatus moves an order through the workflow. The row is locked for the
// whole decision, so two concurrent writers serialize and the loser sees the
// winner's state. Writing the current status again is a silent no-op: no
// audit entry, no notification.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: missing tenant context", ErrValidation)
	}

	checker := access.NewChecker(s.repo)

	var (
		updated      *domain.Order
		notification *domain.Notification
		entries      []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		order, err := tx.Order().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}
		if order.TenantID != tenantID {
			return ErrNotFound
		}

		if order.Status == newStatus {
			updated = order
			return nil
		}

		if err := s.authorizeTransition(ctx, checker, order, newStatus, tenantID, actorID); err != nil {
			return err
		}

		before := order.AuditSnapshot()
		if err := tx.Order().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		order.Status = newStatus

		entry := newAuditEntry(ctx, tenantID, domain.ActionUpdate, domain.Order{}.TableName(), order.ID, before, order.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)

		// Walk-in orders have nobody to notify.
		if order.CustomerID != nil {
			if title, body, ok := domain.NotificationForStatus(newStatus); ok {
				notification = &domain.Notification{
					ID:       uuid.NewString(),
					TenantID: tenantID,
					UserID:   *order.CustomerID,
					OrderID:  order.ID,
					Title:    title,
					Body:     body,
					Status:   domain.NotificationPending,
				}
				if err := tx.Notification().Create(ctx, notification); err != nil {
					return fmt.Errorf("failed to create notification: %w", err)
				}
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)
	if notification != nil {
		if err := s.sqsSvc.SendNotifyMessage(ctx, notification); err != nil {
			s.logger.Error("failed to send notify message", err)
		}
	}
	if len(entries) > 0 {
		s.publishEvent(ctx, updated)
	}

	return updated, nil
}

// authorizeTransition decides whether the actor may move the order to
// newStatus. Owning customers may cancel early-stage orders; staff walk the
// forward chain; terminal states and arbitrary jumps need the override
// capability.
func (s *OrderService) authorizeTransition(ctx context.Context, checker *access.Checker, order *domain.Order, newStatus domain.OrderStatus, tenantID, actorID string) error {
	isOwner := order.CustomerID != nil && *order.CustomerID == actorID

	if newStatus == domain.OrderStatusCancelled {
		if isOwner && domain.CustomerMayCancel(order.Status) {
			return nil
		}
		if checker.IsStaff(ctx, tenantID, actorID) {
			if !domain.IsTerminalStatus(order.Status) {
				return nil
			}
			if checker.Can(ctx, tenantID, actorID, domain.CapOverrideTerminal) {
				return nil
			}
			return fmt.Errorf("%w: order is in a terminal state", ErrPreconditionFailed)
		}
		return ErrPermissionDenied
	}

	if !checker.IsStaff(ctx, tenantID, actorID) {
		return ErrPermissionDenied
	}

	if domain.CanTransition(order.Status, newStatus) {
		return nil
	}
	if checker.Can(ctx, tenantID, actorID, domain.CapOverrideTerminal) {
		// Out-of-order correction by an admin; the audit entry carries both
		// snapshots.
		return nil
	}
	if domain.IsTerminalStatus(order.Status) {
		return fmt.Errorf("%w: order is in a terminal state", ErrPreconditionFailed)
	}
	return fmt.Errorf("%w: illegal transition %s -> %s", ErrPreconditionFailed, order.Status, newStatus)
}

// CancelOwnOrder is the customer-facing cancel: one conditional UPDATE that
// succeeds only while the order is still pending and owned by the caller.
// When the guard bites, a read in the same transaction classifies the refusal.
func (s *OrderService) CancelOwnOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}

	var (
		cancelled    *domain.Order
		notification *domain.Notification
		entries      []domain.AuditLogEntry
	)
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		rows, err := tx.Order().CancelPendingOwnedBy(ctx, orderID, actorID)
		if err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		if rows == 0 {
			order, err := tx.Order().GetByID(ctx, orderID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to classify cancel refusal: %w", err)
			}
			if order.CustomerID == nil || *order.CustomerID != actorID {
				return ErrPermissionDenied
			}
			return fmt.Errorf("%w: order is no longer pending", ErrPreconditionFailed)
		}

		order, err := tx.Order().GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to re-read cancelled order: %w", err)
		}

		// Reconstruct the pre-cancel state for the snapshot; the guard only
		// fires on pending orders.
		prev := *order
		prev.Status = domain.OrderStatusPending
		before := prev.AuditSnapshot()

		entry := newAuditEntry(ctx, order.TenantID, domain.ActionUpdate, domain.Order{}.TableName(), order.ID, before, order.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)

		if title, body, ok := domain.NotificationForStatus(domain.OrderStatusCancelled); ok {
			notification = &domain.Notification{
				ID:       uuid.NewString(),
				TenantID: order.TenantID,
				UserID:   actorID,
				OrderID:  order.ID,
				Title:    title,
				Body:     body,
				Status:   domain.NotificationPending,
			}
			if err := tx.Notification().Create(ctx, notification); err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}
		}

		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitIndex(ctx, entries...)
	if notification != nil {
		if err := s.sqsSvc.SendNotifyMessage(ctx, notification); err != nil {
			s.logger.Error("failed to send notify message", err)
		}
	}
	s.publishEvent(ctx, cancelled)

	return cancelled, nil
}

// VerifyPayment records the gateway's confirmation and marks the order paid.
func (s *OrderService) VerifyPayment(ctx context.Context, orderID, paymentRef string) error {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return ErrPermissionDenied
	}
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: missing tenant context", ErrValidation)
	}
	if paymentRef == "" {
		return fmt.Errorf("%w: payment reference is required", ErrValidation)
	}

	checker := access.NewChecker(s.repo)
	if !checker.Can(ctx, tenantID, actorID, domain.CapVerifyPayments) {
		return ErrPermissionDenied
	}

	var entries []domain.AuditLogEntry
	err = s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		order, err := tx.Order().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}
		if order.TenantID != tenantID {
			return ErrNotFound
		}

		payment, err := tx.Payment().GetByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get payment transaction: %w", err)
		}
		if payment.Status == domain.PaymentVerified {
			return fmt.Errorf("%w: payment already verified", ErrPreconditionFailed)
		}

		if err := tx.Payment().MarkVerified(ctx, payment.ID, paymentRef); err != nil {
			return fmt.Errorf("failed to verify payment: %w", err)
		}

		before := order.AuditSnapshot()
		if err := tx.Order().MarkPaid(ctx, orderID); err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		order.Paid = true

		entry := newAuditEntry(ctx, tenantID, domain.ActionUpdate, domain.Order{}.TableName(), order.ID, before, order.AuditSnapshot())
		if err := tx.AuditLog().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		entries = append(entries, *entry)
		return nil
	})
	if err != nil {
		return err
	}

	s.emitIndex(ctx, entries...)
	return nil
}

// SetPrinted marks the kitchen receipt as printed. Operational bookkeeping,
// not a workflow step, so it carries no notification.
func (s *OrderService) SetPrinted(ctx context.Context, orderID string) error {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return ErrPermissionDenied
	}
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: missing tenant context", ErrValidation)
	}

	checker := access.NewChecker(s.repo)
	if !checker.IsStaff(ctx, tenantID, actorID) {
		return ErrPermissionDenied
	}

	return s.repo.Atomic(ctx, func(tx repository.PostgresRepository) error {
		order, err := tx.Order().GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}
		if order.TenantID != tenantID {
			return ErrNotFound
		}
		if err := tx.Order().SetPrinted(ctx, orderID); err != nil {
			return fmt.Errorf("failed to mark order printed: %w", err)
		}
		return nil
	})
}

// GetOrder returns an order to tenant staff, or to the customer who owns it.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: missing tenant context", ErrValidation)
	}

	order, err := s.repo.Order().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.TenantID != tenantID {
		return nil, ErrNotFound
	}

	checker := access.NewChecker(s.repo)
	if checker.IsStaff(ctx, tenantID, actorID) {
		return order, nil
	}
	if order.CustomerID != nil && *order.CustomerID == actorID {
		return order, nil
	}
	return nil, ErrNotFound
}

// ListOrders lists the tenant's orders for staff; customers only ever see
// their own regardless of the filter they send.
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	actorID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, ErrPermissionDenied
	}
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: missing tenant context", ErrValidation)
	}
	filter.TenantID = tenantID

	checker := access.NewChecker(s.repo)
	if !checker.IsStaff(ctx, tenantID, actorID) {
		if !checker.IsMember(ctx, tenantID, actorID) {
			return nil, ErrPermissionDenied
		}
		filter.CustomerID = actorID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	filter.Limit = filter.PageSize
	filter.Offset = (filter.Page - 1) * filter.PageSize

	orders, err := s.repo.Order().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) emitIndex(ctx context.Context, entries ...domain.AuditLogEntry) {
	if len(entries) == 0 {
		return
	}
	if err := s.sqsSvc.SendIndexMessage(ctx, entries...); err != nil {
		s.logger.Error("failed to send index message", err)
	}
}

func (s *OrderService) publishEvent(ctx context.Context, order *domain.Order) {
	if s.publisher == nil || order == nil {
		return
	}
	event := &dto.OrderEvent{
		TenantID:    order.TenantID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish order event", err)
	}
}
