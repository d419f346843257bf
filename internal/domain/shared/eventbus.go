package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice subscribes the handler to all events.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes handlers to domain events
type EventSubscriber interface {
	// Subscribe registers a handler. With no explicit event types the
	// handler's own EventTypes() is used.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	// Start starts background processing
	Start(ctx context.Context) error
	// Stop drains in-flight events and stops the bus
	Stop(ctx context.Context) error
}
