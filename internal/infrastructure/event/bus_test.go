package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	if h.fail {
		return errors.New("handler failure")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent(eventType string) shared.DomainEvent {
	base := shared.NewBaseDomainEvent(eventType, "test", uuid.New(), uuid.New())
	return &base
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers events to type-specific handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"stock.level_changed"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("stock.level_changed")))
		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))

		assert.Len(t, handler.received, 1)
		assert.Equal(t, "stock.level_changed", handler.received[0].EventType())
	})

	t.Run("wildcard handlers receive all events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(),
			newTestEvent("stock.level_changed"),
			newTestEvent("order.created"),
		))

		assert.Len(t, handler.received, 2)
	})

	t.Run("a failing handler does not block others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"order.created"}, fail: true}
		healthy := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))

		assert.Len(t, failing.received, 1)
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handlers stop receiving events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))

		assert.Empty(t, handler.received)
	})
}
