package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
)

// TenantService handles tenant lifecycle, including registration with
// a bootstrapped admin role and user
type TenantService struct {
	tenantRepo     identity.TenantRepository
	userRepo       identity.UserRepository
	roleRepo       identity.RoleRepository
	permissionRepo identity.PermissionRepository
	eventPublisher shared.EventPublisher
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	permissionRepo identity.PermissionRepository,
) *TenantService {
	return &TenantService{
		tenantRepo:     tenantRepo,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *TenantService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a tenant together with an admin role holding every
// permission and an admin user assigned to it
func (s *TenantService) Register(ctx context.Context, req RegisterTenantRequest) (*TenantResponse, error) {
	exists, err := s.tenantRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tenant with this name already exists")
	}

	var tenant *identity.Tenant
	if req.TrialDays > 0 {
		tenant, err = identity.NewTrialTenant(req.Name, req.TrialDays)
	} else {
		tenant, err = identity.NewTenant(req.Name)
	}
	if err != nil {
		return nil, err
	}
	if req.ContactEmail != "" {
		if err := tenant.Update(req.Name, req.ContactEmail); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	adminRole, err := s.bootstrapAdminRole(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(tenant.ID, req.AdminEmail, req.AdminPassword)
	if err != nil {
		return nil, err
	}
	if err := admin.AssignRole(adminRole.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveUserRoles(ctx, admin); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, tenant.GetDomainEvents(), admin.GetDomainEvents())
	tenant.ClearDomainEvents()
	admin.ClearDomainEvents()

	return ToTenantResponse(tenant), nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToTenantResponse(tenant), nil
}

// List returns all tenants with pagination
func (s *TenantService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*TenantResponse], error) {
	tenants, total, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*TenantResponse, 0, len(tenants))
	for _, tenant := range tenants {
		responses = append(responses, ToTenantResponse(tenant))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a tenant's details, plan, and status
func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.ContactEmail != nil {
		name := tenant.Name
		if req.Name != nil && *req.Name != tenant.Name {
			exists, err := s.tenantRepo.ExistsByName(ctx, *req.Name)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A tenant with this name already exists")
			}
			name = *req.Name
		}
		contactEmail := tenant.ContactEmail
		if req.ContactEmail != nil {
			contactEmail = *req.ContactEmail
		}
		if err := tenant.Update(name, contactEmail); err != nil {
			return nil, err
		}
	}

	if req.Plan != nil {
		if err := tenant.ChangePlan(identity.TenantPlan(*req.Plan)); err != nil {
			return nil, err
		}
	}

	if req.Status != nil && string(tenant.Status) != *req.Status {
		switch identity.TenantStatus(*req.Status) {
		case identity.TenantStatusActive:
			err = tenant.Activate()
		case identity.TenantStatusSuspended:
			err = tenant.Suspend()
		default:
			err = shared.NewDomainError("INVALID_STATUS", "Unknown tenant status")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, tenant.GetDomainEvents())
	tenant.ClearDomainEvents()

	return ToTenantResponse(tenant), nil
}

// Delete deletes a tenant
func (s *TenantService) Delete(ctx context.Context, tenantID uuid.UUID) error {
	return s.tenantRepo.Delete(ctx, tenantID)
}

func (s *TenantService) bootstrapAdminRole(ctx context.Context, tenantID uuid.UUID) (*identity.Role, error) {
	role, err := identity.NewSystemRole(tenantID, identity.RoleNameAdmin)
	if err != nil {
		return nil, err
	}
	if err := role.SetDescription("Full access to all resources"); err != nil {
		return nil, err
	}

	permissions, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	permissionIDs := make([]uuid.UUID, 0, len(permissions))
	for _, permission := range permissions {
		permissionIDs = append(permissionIDs, permission.ID)
	}
	if len(permissionIDs) > 0 {
		if err := role.SetPermissions(permissionIDs); err != nil {
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
	return role, nil
}

func (s *TenantService) publishDomainEvents(ctx context.Context, eventSets ...[]shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, events := range eventSets {
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}
