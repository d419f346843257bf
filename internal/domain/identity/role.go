package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Well-known role names
const (
	RoleNameAdmin   = "admin"
	RoleNameManager = "manager"
	RoleNameViewer  = "viewer"
)

// Role represents a named set of permissions within a tenant.
// It is the aggregate root for role-related operations.
type Role struct {
	shared.TenantAggregateRoot
	Name          string `gorm:"type:varchar(100);not null"`
	Description   string `gorm:"type:varchar(500)"`
	IsSystem      bool   // system roles cannot be deleted
	PermissionIDs []uuid.UUID `gorm:"-"` // stored in role_permissions, loaded by the repository
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// Permission represents an allowed action on a resource.
// Permissions are platform-wide and shared across tenants.
type Permission struct {
	shared.BaseEntity
	Resource string `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_resource_action"`
	Action   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_permissions_resource_action"`
}

// TableName returns the table name for GORM
func (Permission) TableName() string {
	return "permissions"
}

// Key returns the canonical "resource:action" form
func (p *Permission) Key() string {
	return p.Resource + ":" + p.Action
}

// RolePermission represents the many-to-many relationship between roles and permissions
type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (RolePermission) TableName() string {
	return "role_permissions"
}

// NewRole creates a new role with required fields
func NewRole(tenantID uuid.UUID, name string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	role := &Role{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.ToLower(strings.TrimSpace(name)),
		PermissionIDs:       make([]uuid.UUID, 0),
	}

	return role, nil
}

// NewSystemRole creates a role that cannot be deleted
func NewSystemRole(tenantID uuid.UUID, name string) (*Role, error) {
	role, err := NewRole(tenantID, name)
	if err != nil {
		return nil, err
	}
	role.IsSystem = true
	return role, nil
}

// SetDescription sets the role's description
func (r *Role) SetDescription(description string) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Rename changes the role's name
func (r *Role) Rename(name string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be renamed")
	}
	if err := validateRoleName(name); err != nil {
		return err
	}

	r.Name = strings.ToLower(strings.TrimSpace(name))
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetPermissions replaces the role's permissions
func (r *Role) SetPermissions(permissionIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool)
	unique := make([]uuid.UUID, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		if pid == uuid.Nil {
			return shared.NewDomainError("INVALID_PERMISSION_ID", "Permission ID cannot be empty")
		}
		if !seen[pid] {
			seen[pid] = true
			unique = append(unique, pid)
		}
	}

	r.PermissionIDs = unique
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// HasPermission checks if the role grants a specific permission
func (r *Role) HasPermission(permissionID uuid.UUID) bool {
	for _, pid := range r.PermissionIDs {
		if pid == permissionID {
			return true
		}
	}
	return false
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}
