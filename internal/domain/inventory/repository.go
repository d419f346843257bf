package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockItemView is a stock row joined with product and warehouse data
type StockItemView struct {
	StockItem
	ProductSKU    string
	ProductName   string
	WarehouseName string
}

// StockItemRepository defines the interface for stock persistence
type StockItemRepository interface {
	// Upsert creates the stock row or overwrites its quantity when a
	// row already exists for the (warehouse, product) pair
	Upsert(ctx context.Context, item *StockItem) error

	// FindByWarehouseAndProduct finds the stock row for a (warehouse, product) pair
	FindByWarehouseAndProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*StockItem, error)

	// FindByWarehouse returns all stock rows for a warehouse joined with product data
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]*StockItemView, error)

	// FindBelowThreshold returns all stock rows under the threshold joined with
	// product and warehouse data
	FindBelowThreshold(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]*StockItemView, error)

	// SumQuantityForTenant returns the total units held across all warehouses
	SumQuantityForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// SumQuantityByWarehouse returns total units held per warehouse
	SumQuantityByWarehouse(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error)

	// CountBelowThreshold returns the number of stock rows under the threshold
	CountBelowThreshold(ctx context.Context, tenantID uuid.UUID, threshold int64) (int64, error)
}
