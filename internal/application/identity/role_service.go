package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
)

// RoleService handles role and permission management within a tenant
type RoleService struct {
	roleRepo       identity.RoleRepository
	permissionRepo identity.PermissionRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository, permissionRepo identity.PermissionRepository) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// Create creates a new role with optional permission assignments
func (s *RoleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRoleRequest) (*RoleResponse, error) {
	exists, err := s.roleRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A role with this name already exists")
	}

	role, err := identity.NewRole(tenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := role.SetDescription(req.Description); err != nil {
			return nil, err
		}
	}

	if len(req.PermissionIDs) > 0 {
		if err := s.validatePermissionIDs(ctx, req.PermissionIDs); err != nil {
			return nil, err
		}
		if err := role.SetPermissions(req.PermissionIDs); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	if len(role.PermissionIDs) > 0 {
		if err := s.roleRepo.SaveRolePermissions(ctx, role); err != nil {
			return nil, err
		}
	}

	return ToRoleResponse(role), nil
}

// GetByID retrieves a role with its permissions
func (s *RoleService) GetByID(ctx context.Context, tenantID, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForTenant(ctx, tenantID, roleID)
	if err != nil {
		return nil, err
	}
	return ToRoleResponse(role), nil
}

// List returns roles for a tenant with pagination
func (s *RoleService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*RoleResponse], error) {
	roles, total, err := s.roleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, ToRoleResponse(role))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a role's name, description, and permissions
func (s *RoleService) Update(ctx context.Context, tenantID, roleID uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByIDForTenant(ctx, tenantID, roleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != role.Name {
		exists, err := s.roleRepo.ExistsByName(ctx, tenantID, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A role with this name already exists")
		}
		if err := role.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		if err := role.SetDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	permissionsChanged := false
	if req.PermissionIDs != nil {
		if err := s.validatePermissionIDs(ctx, *req.PermissionIDs); err != nil {
			return nil, err
		}
		if err := role.SetPermissions(*req.PermissionIDs); err != nil {
			return nil, err
		}
		permissionsChanged = true
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	if permissionsChanged {
		if err := s.roleRepo.SaveRolePermissions(ctx, role); err != nil {
			return nil, err
		}
	}

	return ToRoleResponse(role), nil
}

// Delete deletes a role. System roles cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, tenantID, roleID uuid.UUID) error {
	role, err := s.roleRepo.FindByIDForTenant(ctx, tenantID, roleID)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	return s.roleRepo.DeleteForTenant(ctx, tenantID, roleID)
}

// ListPermissions returns the platform-wide permission catalog
func (s *RoleService) ListPermissions(ctx context.Context) ([]*PermissionResponse, error) {
	permissions, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		responses = append(responses, ToPermissionResponse(permission))
	}
	return responses, nil
}

func (s *RoleService) validatePermissionIDs(ctx context.Context, permissionIDs []uuid.UUID) error {
	if len(permissionIDs) == 0 {
		return nil
	}

	permissions, err := s.permissionRepo.FindByIDs(ctx, permissionIDs)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]bool, len(permissions))
	for _, permission := range permissions {
		found[permission.ID] = true
	}
	for _, id := range permissionIDs {
		if !found[id] {
			return shared.NewDomainError("INVALID_PERMISSION", "Permission not found: "+id.String())
		}
	}
	return nil
}
