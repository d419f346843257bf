package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "stockflow-test",
	})
}

func testWebSocketConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		WriteTimeout:   time.Second,
		PingInterval:   10 * time.Second,
		PongTimeout:    20 * time.Second,
		SendBufferSize: 8,
		MaxMessageSize: 4096,
	}
}

type gatewayFixture struct {
	gateway    *Gateway
	jwtService *auth.JWTService
	server     *httptest.Server
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := newTestJWTService()
	gateway := NewGateway(jwtService, testWebSocketConfig(), zap.NewNop())

	engine := gin.New()
	engine.GET("/ws/notifications", gateway.HandleConnection)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &gatewayFixture{
		gateway:    gateway,
		jwtService: jwtService,
		server:     server,
	}
}

func (f *gatewayFixture) wsURL() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/notifications"
}

func (f *gatewayFixture) accessToken(t *testing.T, tenantID, userID uuid.UUID) string {
	t.Helper()
	pair, err := f.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Email:    "jo@example.com",
		Roles:    []string{"admin"},
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *gatewayFixture) connect(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL()+"?token="+token, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, gateway *Gateway, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if gateway.ConnectionCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d connections, have %d", want, gateway.ConnectionCount())
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestGateway_BroadcastToTenant(t *testing.T) {
	f := newGatewayFixture(t)

	tenantA := uuid.New()
	tenantB := uuid.New()

	connA := f.connect(t, f.accessToken(t, tenantA, uuid.New()))
	connB := f.connect(t, f.accessToken(t, tenantB, uuid.New()))
	waitForConnections(t, f.gateway, 2)

	f.gateway.BroadcastToTenant(tenantA.String(), "data_update", map[string]string{"resource": "orders"})

	msg := readMessage(t, connA)
	assert.Equal(t, "data_update", msg.Type)
	assert.False(t, msg.Timestamp.IsZero())

	// The other tenant must not see it
	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := connB.ReadMessage()
	assert.Error(t, err)
}

func TestGateway_SendToUser(t *testing.T) {
	f := newGatewayFixture(t)

	tenantID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()

	connA := f.connect(t, f.accessToken(t, tenantID, userA))
	connB := f.connect(t, f.accessToken(t, tenantID, userB))
	waitForConnections(t, f.gateway, 2)

	f.gateway.SendToUser(userA.String(), "notification", map[string]string{"text": "shipment delivered"})

	msg := readMessage(t, connA)
	assert.Equal(t, "notification", msg.Type)

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := connB.ReadMessage()
	assert.Error(t, err)
}

func TestGateway_Broadcast_ReachesEveryone(t *testing.T) {
	f := newGatewayFixture(t)

	connA := f.connect(t, f.accessToken(t, uuid.New(), uuid.New()))
	connB := f.connect(t, f.accessToken(t, uuid.New(), uuid.New()))
	waitForConnections(t, f.gateway, 2)

	f.gateway.Broadcast("announcement", map[string]string{"text": "maintenance window"})

	assert.Equal(t, "announcement", readMessage(t, connA).Type)
	assert.Equal(t, "announcement", readMessage(t, connB).Type)
}

func TestGateway_InvalidTokenDisconnectsSilently(t *testing.T) {
	f := newGatewayFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL()+"?token=not-a-token", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, f.gateway.ConnectionCount())
}

func TestGateway_AuthorizationHeaderAccepted(t *testing.T) {
	f := newGatewayFixture(t)

	tenantID := uuid.New()
	header := http.Header{}
	header.Set("Authorization", "Bearer "+f.accessToken(t, tenantID, uuid.New()))

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(), header)
	require.NoError(t, err)
	defer conn.Close()
	waitForConnections(t, f.gateway, 1)

	f.gateway.BroadcastToTenant(tenantID.String(), "data_update", nil)
	assert.Equal(t, "data_update", readMessage(t, conn).Type)
}

func TestGateway_UnregisterOnDisconnect(t *testing.T) {
	f := newGatewayFixture(t)

	conn := f.connect(t, f.accessToken(t, uuid.New(), uuid.New()))
	waitForConnections(t, f.gateway, 1)

	require.NoError(t, conn.Close())
	waitForConnections(t, f.gateway, 0)
}
