package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *Role) error

	// Update updates an existing role
	Update(ctx context.Context, role *Role) error

	// DeleteForTenant deletes a role by ID within the tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByIDForTenant finds a role by ID within the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Role, error)

	// FindByName finds a role by name within the tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Role, error)

	// FindAllForTenant returns all roles for the tenant with pagination
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Role, int64, error)

	// FindByIDs finds roles by their IDs within the tenant
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Role, error)

	// ExistsByName checks if a role name is already taken within the tenant
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)

	// SaveRolePermissions replaces the role's permission assignments
	SaveRolePermissions(ctx context.Context, role *Role) error

	// LoadRolePermissions loads the role's permission assignments
	LoadRolePermissions(ctx context.Context, role *Role) error
}

// PermissionRepository defines the interface for permission persistence
type PermissionRepository interface {
	// FindAll returns all permissions
	FindAll(ctx context.Context) ([]*Permission, error)

	// FindByIDs finds permissions by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Permission, error)
}
