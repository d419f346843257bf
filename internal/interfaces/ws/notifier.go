package ws

import (
	"context"

	"github.com/stockflow/backend/internal/domain/shared"
)

// EventNotifier bridges the domain event bus to the gateway. Every
// published event turns into a data_update message broadcast to the
// tenant it belongs to.
type EventNotifier struct {
	gateway *Gateway
}

// NewEventNotifier creates a new EventNotifier
func NewEventNotifier(gateway *Gateway) *EventNotifier {
	return &EventNotifier{gateway: gateway}
}

// Handle broadcasts the event to the owning tenant's room
func (n *EventNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	n.gateway.BroadcastToTenant(event.TenantID().String(), "data_update", map[string]interface{}{
		"event":          event.EventType(),
		"aggregate_type": event.AggregateType(),
		"aggregate_id":   event.AggregateID(),
		"occurred_at":    event.OccurredAt(),
	})
	return nil
}

// EventTypes subscribes the notifier to all events
func (n *EventNotifier) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*EventNotifier)(nil)
