package api

import (
	"github.com/gin-gonic/gin"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/middleware"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/service"
	"github.com/filippocalippo/vittoria-order-api/internal/service/pubsub"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

type Server struct {
	tenant    *TenantHandler
	order     *OrderHandler
	auditLog  *AuditLogHandler
	rateLimit *RateLimitHandler
	websocket *WebSocketHandler

	auth         *middleware.AuthMiddleware
	rateLimitMW  *middleware.RateLimitMiddleware
	signing      *middleware.SigningMiddleware
	globalBudget int
}

func NewServer(
	directoryService *service.DirectoryService,
	orderService *service.OrderService,
	auditService *service.AuditService,
	rateLimitService *service.RateLimitService,
	repo repository.PostgresRepository,
	auth *middleware.AuthMiddleware,
	rateLimitMW *middleware.RateLimitMiddleware,
	signing *middleware.SigningMiddleware,
	cfg *config.Config,
	logger *logger.Logger,
	pubsub *pubsub.RedisPubSub,
) *Server {
	return &Server{
		tenant:       NewTenantHandler(directoryService),
		order:        NewOrderHandler(orderService),
		auditLog:     NewAuditLogHandler(auditService),
		rateLimit:    NewRateLimitHandler(rateLimitService),
		websocket:    NewWebSocketHandler(repo, logger, pubsub),
		auth:         auth,
		rateLimitMW:  rateLimitMW,
		signing:      signing,
		globalBudget: cfg.GlobalRateLimit,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Apply global rate limiting
	api.Use(s.rateLimitMW.GlobalRateLimit(s.globalBudget))

	{
		tenants := api.Group("/tenants", s.auth.JWTAuth())
		{
			tenants.POST("", s.tenant.CreateTenant)
			tenants.GET("/:id", s.tenant.GetTenant)
			tenants.PATCH("/:id", s.tenant.UpdateTenant)
			tenants.DELETE("/:id", s.tenant.DeactivateTenant)
			tenants.POST("/:id/rotate-secret", s.tenant.RotateSecret)
			tenants.POST("/:id/members", s.tenant.AddMember)
			tenants.GET("/:id/members", s.tenant.ListMembers)
			tenants.PATCH("/:id/members/:userID/role", s.tenant.ChangeRole)
		}

		api.GET("/memberships", s.auth.JWTAuth(), s.tenant.ListMyMemberships)

		orders := api.Group("/orders", s.auth.JWTAuth(), s.rateLimitMW.TenantRateLimit())
		{
			// Mutations that move money or state are signed; reads are not.
			orders.POST("", s.signing.RequireSignature(), s.order.PlaceOrder)
			orders.GET("", s.order.ListOrders)
			orders.GET("/stream", s.websocket.HandleWebSocket)
			orders.GET("/:id", s.order.GetOrder)
			orders.PATCH("/:id/status", s.signing.RequireSignature(), s.order.UpdateStatus)
			orders.POST("/:id/cancel", s.signing.RequireSignature(), s.order.CancelOrder)
			orders.POST("/:id/verify-payment", s.signing.RequireSignature(), s.order.VerifyPayment)
			orders.POST("/:id/printed", s.order.SetPrinted)
		}

		auditLogs := api.Group("/audit-logs", s.auth.JWTAuth(), s.rateLimitMW.TenantRateLimit())
		{
			auditLogs.GET("", s.auditLog.ListEntries)
			auditLogs.GET("/:id", s.auditLog.GetEntry)
		}

		api.POST("/rate-limit/check", s.auth.JWTAuth(), s.rateLimit.CheckRateLimit)
	}
}

// StartWebSocketHub starts the WebSocket hub for broadcasting order events
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

// GetWebSocketHandler returns the WebSocket handler for wiring up broadcasting
func (s *Server) GetWebSocketHandler() *WebSocketHandler {
	return s.websocket
}
