package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// StockItem represents the quantity of one product held in one
// warehouse. It is the aggregate root for stock-related operations;
// exactly one row exists per (warehouse, product) pair within a tenant.
type StockItem struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_warehouse_product"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_warehouse_product"`
	Quantity    int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item with required fields
func NewStockItem(tenantID, warehouseID, productID uuid.UUID, quantity int64) (*StockItem, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_ID", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	item := &StockItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		ProductID:           productID,
		Quantity:            quantity,
	}

	item.AddDomainEvent(NewStockLevelChangedEvent(item, 0))

	return item, nil
}

// SetQuantity overwrites the stock level
func (s *StockItem) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	previous := s.Quantity
	s.Quantity = quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockLevelChangedEvent(s, previous))

	return nil
}

// Adjust changes the stock level by a signed delta
func (s *StockItem) Adjust(delta int64) error {
	next := s.Quantity + delta
	if next < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Adjustment would make stock negative")
	}
	return s.SetQuantity(next)
}

// IsBelow returns true if the stock level is below the given threshold
func (s *StockItem) IsBelow(threshold int64) bool {
	return s.Quantity < threshold
}
