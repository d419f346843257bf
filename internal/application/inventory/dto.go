package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/logistics"
)

// UpsertStockRequest sets the stock level for a (warehouse, product) pair
type UpsertStockRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"min=0"`
}

// StockItemResponse represents a stock row in API responses
type StockItemResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToStockItemResponse converts a stock item aggregate to its response form
func ToStockItemResponse(item *inventory.StockItem) *StockItemResponse {
	return &StockItemResponse{
		ID:          item.ID,
		TenantID:    item.TenantID,
		WarehouseID: item.WarehouseID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Version:     item.Version,
	}
}

// StockItemViewResponse is a stock row joined with product and warehouse data
type StockItemViewResponse struct {
	ID            uuid.UUID `json:"id"`
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductSKU    string    `json:"product_sku"`
	ProductName   string    `json:"product_name"`
	Quantity      int64     `json:"quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToStockItemViewResponse converts a joined stock row to its response form
func ToStockItemViewResponse(view *inventory.StockItemView) *StockItemViewResponse {
	return &StockItemViewResponse{
		ID:            view.ID,
		WarehouseID:   view.WarehouseID,
		WarehouseName: view.WarehouseName,
		ProductID:     view.ProductID,
		ProductSKU:    view.ProductSKU,
		ProductName:   view.ProductName,
		Quantity:      view.Quantity,
		UpdatedAt:     view.UpdatedAt,
	}
}

// ToUpsertedStockView builds the joined response for an upsert from the
// stored row and the product and warehouse aggregates it belongs to
func ToUpsertedStockView(item *inventory.StockItem, product *catalog.Product, warehouse *logistics.Warehouse) *StockItemViewResponse {
	return &StockItemViewResponse{
		ID:            item.ID,
		WarehouseID:   item.WarehouseID,
		WarehouseName: warehouse.Name,
		ProductID:     item.ProductID,
		ProductSKU:    product.SKU,
		ProductName:   product.Name,
		Quantity:      item.Quantity,
		UpdatedAt:     item.UpdatedAt,
	}
}

// LowStockResponse lists stock rows under the low-stock threshold
type LowStockResponse struct {
	Threshold int64                    `json:"threshold"`
	Items     []*StockItemViewResponse `json:"items"`
}
