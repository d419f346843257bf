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

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Create creates a new driver
func (r *GormDriverRepository) Create(ctx context.Context, driver *logistics.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

// Update updates an existing driver
func (r *GormDriverRepository) Update(ctx context.Context, driver *logistics.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

// DeleteForTenant deletes a driver within a tenant
func (r *GormDriverRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&logistics.Driver{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant finds a driver by ID within a tenant
func (r *GormDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*logistics.Driver, error) {
	var driver logistics.Driver
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// FindAllForTenant finds all drivers for a tenant with pagination
func (r *GormDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*logistics.Driver, int64, error) {
	base := r.db.WithContext(ctx).Model(&logistics.Driver{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR license_number ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drivers []*logistics.Driver
	query := applyOrdering(base, filter, DriverSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// ExistsByLicenseNumber checks if a license number is already registered within a tenant
func (r *GormDriverRepository) ExistsByLicenseNumber(ctx context.Context, tenantID uuid.UUID, licenseNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&logistics.Driver{}).
		Where("tenant_id = ? AND license_number = ?", tenantID, strings.ToUpper(licenseNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDriverRepository implements DriverRepository
var _ logistics.DriverRepository = (*GormDriverRepository)(nil)
