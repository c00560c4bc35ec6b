package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
	pkgutils "github.com/filippocalippo/vittoria-order-api/pkg/utils"
)

//go:generate mockery --name OrderService --output ../mocks
type OrderService interface {
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error)
	UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error)
	CancelOwnOrder(ctx context.Context, orderID string) (*domain.Order, error)
	VerifyPayment(ctx context.Context, orderID, paymentRef string) error
	SetPrinted(ctx context.Context, orderID string) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type OrderHandler struct {
	*BaseHandler
	service OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// PlaceOrder godoc
// @Summary Place a new order
// @Description Create an order with a per-tenant daily number; signed endpoint
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.PlaceOrderRequest true "Order"
// @Success 201 {object} dto.PlaceOrderResponse
// @Failure 400 {object} dto.Error
// @Failure 429 {object} dto.Error
// @Router /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	resp, err := h.service.PlaceOrder(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} dto.Error
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders godoc
// @Summary List orders
// @Description Staff see the tenant's orders; customers only their own
// @Tags orders
// @Produce json
// @Param status query string false "Status filter"
// @Param type query string false "Order type filter"
// @Param start_time query string false "Start time (RFC3339 or YYYY-MM-DD)"
// @Param end_time query string false "End time (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {array} domain.Order
// @Failure 400 {object} dto.Error
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := domain.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Type:   domain.OrderType(c.Query("type")),
	}

	if v := c.Query("start_time"); v != "" {
		t, err := pkgutils.ParseUserTime(v, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
			return
		}
		filter.StartTime = t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := pkgutils.ParseUserTime(v, true)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
			return
		}
		filter.EndTime = t
	}
	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	orders, err := h.service.ListOrders(h.RequestCtx(c), filter)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateStatus godoc
// @Summary Move an order through the workflow
// @Description Signed endpoint; staff only except customer cancellation
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} domain.Order
// @Failure 403 {object} dto.Error
// @Failure 412 {object} dto.Error
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	order, err := h.service.UpdateStatus(h.RequestCtx(c), c.Param("id"), req.Status)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel the caller's own pending order
// @Description Signed endpoint; atomic guard, no intermediate cancel state
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} dto.Error
// @Failure 412 {object} dto.Error
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.service.CancelOwnOrder(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// VerifyPayment godoc
// @Summary Record the gateway confirmation for an order's payment
// @Description Signed endpoint; staff with payment capability only
// @Tags orders
// @Accept json
// @Param id path string true "Order ID"
// @Param body body dto.VerifyPaymentRequest true "Gateway reference"
// @Success 204
// @Failure 403 {object} dto.Error
// @Failure 412 {object} dto.Error
// @Router /orders/{id}/verify-payment [post]
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error(), Kind: "validation"})
		return
	}

	if err := h.service.VerifyPayment(h.RequestCtx(c), c.Param("id"), req.PaymentRef); err != nil {
		h.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPrinted godoc
// @Summary Mark the kitchen receipt as printed
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 403 {object} dto.Error
// @Router /orders/{id}/printed [post]
func (h *OrderHandler) SetPrinted(c *gin.Context) {
	if err := h.service.SetPrinted(h.RequestCtx(c), c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
