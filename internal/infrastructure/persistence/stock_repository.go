package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// Upsert creates the stock row or overwrites its quantity when a row
// already exists for the (warehouse, product) pair
func (r *GormStockItemRepository) Upsert(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "tenant_id"},
				{Name: "warehouse_id"},
				{Name: "product_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   item.Quantity,
				"updated_at": item.UpdatedAt,
				"version":    gorm.Expr("stock_items.version + 1"),
			}),
		}).
		Create(item).Error
}

// FindByWarehouseAndProduct finds the stock row for a (warehouse, product) pair
func (r *GormStockItemRepository) FindByWarehouseAndProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?", tenantID, warehouseID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByWarehouse returns all stock rows for a warehouse joined with product data
func (r *GormStockItemRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]*inventory.StockItemView, error) {
	var views []*inventory.StockItemView
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Select("stock_items.*, products.sku AS product_sku, products.name AS product_name, warehouses.name AS warehouse_name").
		Joins("JOIN products ON products.id = stock_items.product_id").
		Joins("JOIN warehouses ON warehouses.id = stock_items.warehouse_id").
		Where("stock_items.tenant_id = ? AND stock_items.warehouse_id = ?", tenantID, warehouseID).
		Order("products.name ASC").
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// FindBelowThreshold returns all stock rows under the threshold joined
// with product and warehouse data
func (r *GormStockItemRepository) FindBelowThreshold(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]*inventory.StockItemView, error) {
	var views []*inventory.StockItemView
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Select("stock_items.*, products.sku AS product_sku, products.name AS product_name, warehouses.name AS warehouse_name").
		Joins("JOIN products ON products.id = stock_items.product_id").
		Joins("JOIN warehouses ON warehouses.id = stock_items.warehouse_id").
		Where("stock_items.tenant_id = ? AND stock_items.quantity < ?", tenantID, threshold).
		Order("stock_items.quantity ASC").
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// SumQuantityForTenant returns the total units held across all warehouses
func (r *GormStockItemRepository) SumQuantityForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// warehouseQuantityRow is a scan target for per-warehouse totals
type warehouseQuantityRow struct {
	WarehouseID uuid.UUID
	Total       int64
}

// SumQuantityByWarehouse returns total units held per warehouse
func (r *GormStockItemRepository) SumQuantityByWarehouse(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []warehouseQuantityRow
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("tenant_id = ?", tenantID).
		Select("warehouse_id, COALESCE(SUM(quantity), 0) AS total").
		Group("warehouse_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		totals[row.WarehouseID] = row.Total
	}
	return totals, nil
}

// CountBelowThreshold returns the number of stock rows under the threshold
func (r *GormStockItemRepository) CountBelowThreshold(ctx context.Context, tenantID uuid.UUID, threshold int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("tenant_id = ? AND quantity < ?", tenantID, threshold).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)
