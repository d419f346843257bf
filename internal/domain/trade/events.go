package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder    = "Order"
	AggregateTypeShipment = "Shipment"
)

// Trade domain event types
const (
	EventTypeOrderCreated          = "OrderCreated"
	EventTypeOrderStatusChanged    = "OrderStatusChanged"
	EventTypeShipmentCreated       = "ShipmentCreated"
	EventTypeShipmentStatusChanged = "ShipmentStatusChanged"
)

// OrderCreatedEvent is published when an order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		Total:           order.TotalAmount(),
		ItemCount:       len(order.Items),
	}
}

// OrderStatusChangedEvent is published when an order's status changes
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
	}
}

// ShipmentCreatedEvent is published when a shipment is created
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(shipment *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCreated, AggregateTypeShipment, shipment.ID, shipment.TenantID),
		OrderID:         shipment.OrderID,
		TrackingNumber:  shipment.TrackingNumber,
	}
}

// ShipmentStatusChangedEvent is published when a shipment's status changes
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID      `json:"order_id"`
	TrackingNumber string         `json:"tracking_number"`
	Status         ShipmentStatus `json:"status"`
}

// NewShipmentStatusChangedEvent creates a new ShipmentStatusChangedEvent
func NewShipmentStatusChangedEvent(shipment *Shipment) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentStatusChanged, AggregateTypeShipment, shipment.ID, shipment.TenantID),
		OrderID:         shipment.OrderID,
		TrackingNumber:  shipment.TrackingNumber,
		Status:          shipment.Status,
	}
}
