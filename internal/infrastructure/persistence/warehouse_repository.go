package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// Create creates a new warehouse
func (r *GormWarehouseRepository) Create(ctx context.Context, warehouse *logistics.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

// Update updates an existing warehouse
func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *logistics.Warehouse) error {
	return r.db.WithContext(ctx).Save(warehouse).Error
}

// DeleteForTenant deletes a warehouse within a tenant
func (r *GormWarehouseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&logistics.Warehouse{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant finds a warehouse by ID within a tenant
func (r *GormWarehouseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*logistics.Warehouse, error) {
	var warehouse logistics.Warehouse
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAllForTenant finds all warehouses for a tenant with pagination
func (r *GormWarehouseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*logistics.Warehouse, int64, error) {
	base := r.db.WithContext(ctx).Model(&logistics.Warehouse{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR location ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var warehouses []*logistics.Warehouse
	query := applyOrdering(base, filter, WarehouseSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

// ExistsByName checks if a warehouse name is already taken within a tenant
func (r *GormWarehouseRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&logistics.Warehouse{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ logistics.WarehouseRepository = (*GormWarehouseRepository)(nil)
