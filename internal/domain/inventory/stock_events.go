package inventory

import (
	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant for StockItem
const AggregateTypeStockItem = "StockItem"

// Stock domain event types
const (
	EventTypeStockLevelChanged = "StockLevelChanged"
)

// StockLevelChangedEvent is published whenever a stock level is set
type StockLevelChangedEvent struct {
	shared.BaseDomainEvent
	WarehouseID      uuid.UUID `json:"warehouse_id"`
	ProductID        uuid.UUID `json:"product_id"`
	PreviousQuantity int64     `json:"previous_quantity"`
	Quantity         int64     `json:"quantity"`
}

// NewStockLevelChangedEvent creates a new StockLevelChangedEvent
func NewStockLevelChangedEvent(item *StockItem, previous int64) *StockLevelChangedEvent {
	return &StockLevelChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockLevelChanged, AggregateTypeStockItem, item.ID, item.TenantID),
		WarehouseID:      item.WarehouseID,
		ProductID:        item.ProductID,
		PreviousQuantity: previous,
		Quantity:         item.Quantity,
	}
}
