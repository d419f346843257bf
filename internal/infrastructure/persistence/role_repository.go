package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role
func (r *GormRoleRepository) Create(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// Update updates an existing role
func (r *GormRoleRepository) Update(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// DeleteForTenant deletes a role and its permission assignments within a tenant
func (r *GormRoleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&identity.Role{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Delete(&identity.RolePermission{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&identity.UserRole{}, "role_id = ?", id).Error
	})
}

// FindByIDForTenant finds a role by ID within a tenant
func (r *GormRoleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadRolePermissions(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByName finds a role by name within a tenant
func (r *GormRoleRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, strings.ToLower(strings.TrimSpace(name))).
		First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadRolePermissions(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// FindAllForTenant finds all roles for a tenant with pagination
func (r *GormRoleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*identity.Role, int64, error) {
	base := r.db.WithContext(ctx).Model(&identity.Role{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ?", pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []*identity.Role
	query := applyOrdering(base, filter, RoleSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// FindByIDs finds roles by their IDs within a tenant
func (r *GormRoleRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*identity.Role, error) {
	if len(ids) == 0 {
		return []*identity.Role{}, nil
	}

	var roles []*identity.Role
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// ExistsByName checks if a role name is already taken within a tenant
func (r *GormRoleRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Role{}).
		Where("tenant_id = ? AND name = ?", tenantID, strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveRolePermissions replaces the role's permission assignments
func (r *GormRoleRepository) SaveRolePermissions(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.RolePermission{}, "role_id = ?", role.ID).Error; err != nil {
			return err
		}
		if len(role.PermissionIDs) == 0 {
			return nil
		}

		assignments := make([]identity.RolePermission, 0, len(role.PermissionIDs))
		now := time.Now()
		for _, permissionID := range role.PermissionIDs {
			assignments = append(assignments, identity.RolePermission{
				RoleID:       role.ID,
				PermissionID: permissionID,
				CreatedAt:    now,
			})
		}
		return tx.Create(&assignments).Error
	})
}

// LoadRolePermissions loads the role's permission assignments
func (r *GormRoleRepository) LoadRolePermissions(ctx context.Context, role *identity.Role) error {
	var assignments []identity.RolePermission
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", role.ID).
		Find(&assignments).Error; err != nil {
		return err
	}

	role.PermissionIDs = make([]uuid.UUID, 0, len(assignments))
	for _, assignment := range assignments {
		role.PermissionIDs = append(role.PermissionIDs, assignment.PermissionID)
	}
	return nil
}

// Ensure GormRoleRepository implements RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)

// GormPermissionRepository implements PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// FindAll returns all permissions
func (r *GormPermissionRepository) FindAll(ctx context.Context) ([]*identity.Permission, error) {
	var permissions []*identity.Permission
	if err := r.db.WithContext(ctx).
		Order("resource ASC, action ASC").
		Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// FindByIDs finds permissions by their IDs
func (r *GormPermissionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Permission, error) {
	if len(ids) == 0 {
		return []*identity.Permission{}, nil
	}

	var permissions []*identity.Permission
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// Ensure GormPermissionRepository implements PermissionRepository
var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)
