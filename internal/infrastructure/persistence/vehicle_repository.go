package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *GormVehicleRepository) Create(ctx context.Context, vehicle *logistics.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// Update updates an existing vehicle
func (r *GormVehicleRepository) Update(ctx context.Context, vehicle *logistics.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// DeleteForTenant deletes a vehicle within a tenant
func (r *GormVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&logistics.Vehicle{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant finds a vehicle by ID within a tenant
func (r *GormVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*logistics.Vehicle, error) {
	var vehicle logistics.Vehicle
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindAllForTenant finds all vehicles for a tenant with pagination
func (r *GormVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*logistics.Vehicle, int64, error) {
	base := r.db.WithContext(ctx).Model(&logistics.Vehicle{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("plate_number ILIKE ? OR model ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []*logistics.Vehicle
	query := applyOrdering(base, filter, VehicleSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// ExistsByPlateNumber checks if a plate number is already registered within a tenant
func (r *GormVehicleRepository) ExistsByPlateNumber(ctx context.Context, tenantID uuid.UUID, plateNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&logistics.Vehicle{}).
		Where("tenant_id = ? AND plate_number = ?", tenantID, strings.ToUpper(plateNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormVehicleRepository implements VehicleRepository
var _ logistics.VehicleRepository = (*GormVehicleRepository)(nil)
