package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/config"
)

// Message is the envelope sent to connected clients
type Message struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Gateway is the notification hub. Clients authenticate with a bearer
// access token and join their user and tenant rooms; messages can then
// be pushed to a single user, a whole tenant, or every connection.
type Gateway struct {
	jwtService *auth.JWTService
	cfg        config.WebSocketConfig
	logger     *zap.Logger
	upgrader   websocket.Upgrader

	mu       sync.RWMutex
	byUser   map[string]map[*client]struct{}
	byTenant map[string]map[*client]struct{}
}

// NewGateway creates a new Gateway
func NewGateway(jwtService *auth.JWTService, cfg config.WebSocketConfig, logger *zap.Logger) *Gateway {
	return &Gateway{
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the HTTP CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		byUser:   make(map[string]map[*client]struct{}),
		byTenant: make(map[string]map[*client]struct{}),
	}
}

type client struct {
	gateway  *Gateway
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	tenantID string
}

// HandleConnection upgrades the request and registers the client. A
// missing or invalid token closes the connection without a payload so
// probes learn nothing.
func (g *Gateway) HandleConnection(c *gin.Context) {
	token := extractToken(c)
	claims, err := g.jwtService.ValidateAccessToken(token)
	if err != nil {
		conn, upgradeErr := g.upgrader.Upgrade(c.Writer, c.Request, nil)
		if upgradeErr == nil {
			_ = conn.Close()
		}
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		gateway:  g,
		conn:     conn,
		send:     make(chan []byte, g.cfg.SendBufferSize),
		userID:   claims.UserID,
		tenantID: claims.TenantID,
	}
	g.register(cl)

	g.logger.Debug("websocket client connected",
		zap.String("user_id", cl.userID),
		zap.String("tenant_id", cl.tenantID),
	)

	go cl.writePump()
	go cl.readPump()
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

func (g *Gateway) register(cl *client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.byUser[cl.userID] == nil {
		g.byUser[cl.userID] = make(map[*client]struct{})
	}
	g.byUser[cl.userID][cl] = struct{}{}

	if g.byTenant[cl.tenantID] == nil {
		g.byTenant[cl.tenantID] = make(map[*client]struct{})
	}
	g.byTenant[cl.tenantID][cl] = struct{}{}
}

func (g *Gateway) unregister(cl *client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if set, ok := g.byUser[cl.userID]; ok {
		if _, present := set[cl]; present {
			delete(set, cl)
			if len(set) == 0 {
				delete(g.byUser, cl.userID)
			}
			close(cl.send)
		}
	}
	if set, ok := g.byTenant[cl.tenantID]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(g.byTenant, cl.tenantID)
		}
	}
}

// SendToUser delivers a message to every connection of one user
func (g *Gateway) SendToUser(userID, msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		g.logger.Error("failed to encode message", zap.Error(err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for cl := range g.byUser[userID] {
		cl.enqueue(data)
	}
}

// BroadcastToTenant delivers a message to every connection of a tenant
func (g *Gateway) BroadcastToTenant(tenantID, msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		g.logger.Error("failed to encode message", zap.Error(err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for cl := range g.byTenant[tenantID] {
		cl.enqueue(data)
	}
}

// Broadcast delivers a message to every connection
func (g *Gateway) Broadcast(msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		g.logger.Error("failed to encode message", zap.Error(err))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, set := range g.byUser {
		for cl := range set {
			cl.enqueue(data)
		}
	}
}

// ConnectionCount returns the number of open connections
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for _, set := range g.byUser {
		count += len(set)
	}
	return count
}

func encode(msgType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// enqueue queues data without blocking. A slow consumer whose buffer is
// full drops the message rather than stalling the sender.
func (cl *client) enqueue(data []byte) {
	select {
	case cl.send <- data:
	default:
		cl.gateway.logger.Warn("websocket send buffer full, dropping message",
			zap.String("user_id", cl.userID),
		)
	}
}

// readPump consumes inbound frames. The gateway is push-only; inbound
// payloads are discarded, the pump exists to process pongs and detect
// disconnects.
func (cl *client) readPump() {
	defer func() {
		cl.gateway.unregister(cl)
		_ = cl.conn.Close()
	}()

	cfg := cl.gateway.cfg
	cl.conn.SetReadLimit(cfg.MaxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (cl *client) writePump() {
	cfg := cl.gateway.cfg
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
