package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Create creates a new tenant
func (r *GormTenantRepository) Create(ctx context.Context, tenant *identity.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// Update updates an existing tenant
func (r *GormTenantRepository) Update(ctx context.Context, tenant *identity.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

// Delete deletes a tenant by ID
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Tenant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var tenant identity.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// FindByName finds a tenant by its unique name
func (r *GormTenantRepository) FindByName(ctx context.Context, name string) (*identity.Tenant, error) {
	var tenant identity.Tenant
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// FindAll returns all tenants with pagination
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Tenant, int64, error) {
	base := r.db.WithContext(ctx).Model(&identity.Tenant{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ?", pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}
	if plan, ok := filter.Filters["plan"]; ok {
		base = base.Where("plan = ?", plan)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []*identity.Tenant
	query := applyOrdering(base, filter, TenantSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

// ExistsByName checks if a tenant name is already taken
func (r *GormTenantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Tenant{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormTenantRepository implements TenantRepository
var _ identity.TenantRepository = (*GormTenantRepository)(nil)
