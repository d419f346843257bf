package logistics

import (
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant for Warehouse
const AggregateTypeWarehouse = "Warehouse"

// Warehouse domain event types
const (
	EventTypeWarehouseCreated = "WarehouseCreated"
)

// WarehouseCreatedEvent is published when a warehouse is created
type WarehouseCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Capacity int64  `json:"capacity"`
}

// NewWarehouseCreatedEvent creates a new WarehouseCreatedEvent
func NewWarehouseCreatedEvent(warehouse *Warehouse) *WarehouseCreatedEvent {
	return &WarehouseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWarehouseCreated, AggregateTypeWarehouse, warehouse.ID, warehouse.TenantID),
		Name:            warehouse.Name,
		Capacity:        warehouse.Capacity,
	}
}
