package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
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

// SecurityEventSubscriber opens a feed of security events. The returned
// function ends the feed.
type SecurityEventSubscriber interface {
	SubscribeSecurityEvents(ctx context.Context, callback func(*domain.SecurityEvent)) (func(), error)
}

type Client struct {
	conn *websocket.Conn
	// requestedTenantID narrows the stream to attempts against one tenant; zero streams all.
	requestedTenantID uint
	send              chan []byte
}

// WebSocketHandler streams denied cross-tenant attempts to connected
// operators. One upstream subscription is shared by every client and held
// only while at least one client is connected.
type WebSocketHandler struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *logger.Logger
	subscriber SecurityEventSubscriber
	ctx        context.Context
	cancel     context.CancelFunc
	stopFeed   func()
}

func NewWebSocketHandler(logger *logger.Logger, subscriber SecurityEventSubscriber) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		subscriber: subscriber,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// HandleWebSocket godoc
// @Summary Stream security events
// @Description Upgrades to a websocket that receives each denied cross-tenant attempt as JSON
// @Tags security-events
// @Security BearerAuth
// @Param requested_tenant_id query int false "Only events against this tenant"
// @Success 101
// @Failure 400 {object} dto.Error
// @Router /admin/security-events/stream [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	var filter uint
	if raw := c.Query("requested_tenant_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid_request", Message: "requested_tenant_id must be numeric"})
			return
		}
		filter = uint(id)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:              conn,
		requestedTenantID: filter,
		send:              make(chan []byte, websocketSendChannelBufferSize),
	}
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			if h.stopFeed == nil {
				stop, err := h.subscriber.SubscribeSecurityEvents(h.ctx, h.handleSecurityEvent)
				if err != nil {
					h.logger.Error("Failed to subscribe to security events", err)
				} else {
					h.stopFeed = stop
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			h.remove(client)
			h.mutex.Unlock()

		case <-h.ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
}

// ClientCount reports the connected clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// remove drops client and releases the upstream feed after the last one
// leaves. Callers hold the write lock.
func (h *WebSocketHandler) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if len(h.clients) == 0 && h.stopFeed != nil {
		h.stopFeed()
		h.stopFeed = nil
	}
}

func (h *WebSocketHandler) handleSecurityEvent(event *domain.SecurityEvent) {
	message, err := json.Marshal(dto.FromSecurityEvent(event))
	if err != nil {
		h.logger.Error("Error marshaling security event", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.requestedTenantID != 0 && client.requestedTenantID != event.RequestedTenantID {
			continue
		}
		select {
		case client.send <- message:
		default:
			// Slow consumer.
			h.remove(client)
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer client.conn.Close()

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

	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
		}
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("Unexpected websocket close", zap.Error(err))
			}
			return
		}
	}
}
