package ws

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/backend/internal/domain/shared"
)

func TestEventNotifier_BroadcastsToOwningTenant(t *testing.T) {
	f := newGatewayFixture(t)
	notifier := NewEventNotifier(f.gateway)

	tenantID := uuid.New()
	conn := f.connect(t, f.accessToken(t, tenantID, uuid.New()))
	waitForConnections(t, f.gateway, 1)

	event := shared.NewBaseDomainEvent("order.created", "Order", uuid.New(), tenantID)
	require.NoError(t, notifier.Handle(context.Background(), &event))

	msg := readMessage(t, conn)
	assert.Equal(t, "data_update", msg.Type)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "order.created", payload["event"])
	assert.Equal(t, "Order", payload["aggregate_type"])
}

func TestEventNotifier_OtherTenantUnaffected(t *testing.T) {
	f := newGatewayFixture(t)
	notifier := NewEventNotifier(f.gateway)

	conn := f.connect(t, f.accessToken(t, uuid.New(), uuid.New()))
	waitForConnections(t, f.gateway, 1)

	event := shared.NewBaseDomainEvent("order.created", "Order", uuid.New(), uuid.New())
	require.NoError(t, notifier.Handle(context.Background(), &event))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
