package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/filippocalippo/vittoria-order-api/internal/access"
	"github.com/filippocalippo/vittoria-order-api/internal/api/dto"
	"github.com/filippocalippo/vittoria-order-api/internal/repository"
	"github.com/filippocalippo/vittoria-order-api/internal/service/pubsub"
	"github.com/filippocalippo/vittoria-order-api/internal/utils"
	"github.com/filippocalippo/vittoria-order-api/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	conn     *websocket.Conn
	tenantID string
	send     chan []byte
}

// WebSocketHandler runs the live order feed for staff dashboards. Events
// arrive over the Redis pub/sub channel of each tenant with at least one
// connected client.
type WebSocketHandler struct {
	repo          repository.PostgresRepository
	clients       map[*Client]bool
	register      chan *Client
	unregister    chan *Client
	mutex         sync.RWMutex
	logger        *logger.Logger
	pubsub        *pubsub.RedisPubSub
	ctx           context.Context
	cancel        context.CancelFunc
	tenantClients map[string]int // Count of clients per tenant
}

func NewWebSocketHandler(repo repository.PostgresRepository, logger *logger.Logger, pubsub *pubsub.RedisPubSub) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		repo:          repo,
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		logger:        logger,
		pubsub:        pubsub,
		ctx:           ctx,
		cancel:        cancel,
		tenantClients: make(map[string]int),
	}
}

// HandleWebSocket godoc
// @Summary Stream order events
// @Description WebSocket upgrade; staff of the active tenant only
// @Tags orders
// @Router /orders/stream [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()
	for k, v := range c.Keys {
		ctx = context.WithValue(ctx, utils.ContextKey(k), v)
	}

	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No tenant ID found"})
		return
	}
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No user ID found"})
		return
	}

	// The feed exposes every order in the tenant, so it is staff-only.
	checker := access.NewChecker(h.repo)
	if !checker.IsStaff(ctx, tenantID, userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	// Create and register new client
	client := &Client{
		conn:     conn,
		tenantID: tenantID,
		send:     make(chan []byte, websocketSendChannelBufferSize),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.tenantClients[client.tenantID]++

			// Subscribe to tenant's channel if this is the first client
			if h.tenantClients[client.tenantID] == 1 {
				if err := h.pubsub.Subscribe(h.ctx, client.tenantID, h.handlePubSubMessage); err != nil {
					h.logger.Errorf("Failed to subscribe to tenant %s: %v", client.tenantID, err)
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				// Decrement tenant client count
				h.tenantClients[client.tenantID]--

				// Unsubscribe if no more clients for this tenant
				if h.tenantClients[client.tenantID] == 0 {
					h.pubsub.Unsubscribe(client.tenantID)
					delete(h.tenantClients, client.tenantID)
				}
			}
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.pubsub.Close()
}

// handlePubSubMessage handles events received from Redis pub/sub
func (h *WebSocketHandler) handlePubSubMessage(event *dto.OrderEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Error marshaling order event: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.tenantID == event.TenantID {
			select {
			case client.send <- message:
			default: // If the channel is full, close the channel and remove the client
				close(client.send)
				delete(h.clients, client)
				h.tenantClients[client.tenantID]--

				// Unsubscribe if no more clients for this tenant
				if h.tenantClients[client.tenantID] == 0 {
					h.pubsub.Unsubscribe(client.tenantID)
					delete(h.tenantClients, client.tenantID)
				}
			}
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		w, err := client.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	// Channel was closed, send close message
	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		messageType, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnf("Unexpected close error for client %s: %v", client.tenantID, err)
			} else {
				h.logger.Warnf("Read error for client %s: %v", client.tenantID, err)
			}
			break
		}

		// Handle any actual messages from client (though we don't expect any)
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			h.logger.Infof("Received message from client %s: %s", client.tenantID, string(message))
		}
	}
}

// BroadcastEvent publishes an order event to the tenant's channel.
func (h *WebSocketHandler) BroadcastEvent(event *dto.OrderEvent) {
	if err := h.pubsub.Publish(h.ctx, event); err != nil {
		h.logger.Errorf("Failed to publish order event: %v", err)
	}
}
