package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
)

// UserService handles user management within a tenant
type UserService struct {
	userRepo       identity.UserRepository
	roleRepo       identity.RoleRepository
	eventPublisher shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new user with optional role assignments
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewUser(tenantID, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if len(req.RoleIDs) > 0 {
		if err := s.validateRoleIDs(ctx, tenantID, req.RoleIDs); err != nil {
			return nil, err
		}
		if err := user.SetRoles(req.RoleIDs); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if len(user.RoleIDs) > 0 {
		if err := s.userRepo.SaveUserRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	s.publishDomainEvents(ctx, user)
	return ToUserResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List returns users for a tenant with pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*UserResponse], error) {
	users, total, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a user's profile, status, and role assignments
func (s *UserService) Update(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}

	if req.Status != nil && string(user.Status) != *req.Status {
		switch identity.UserStatus(*req.Status) {
		case identity.UserStatusActive:
			err = user.Activate()
		case identity.UserStatusDeactivated:
			err = user.Deactivate()
		default:
			err = shared.NewDomainError("INVALID_STATUS", "Unknown user status")
		}
		if err != nil {
			return nil, err
		}
	}

	rolesChanged := false
	if req.RoleIDs != nil {
		if err := s.validateRoleIDs(ctx, tenantID, *req.RoleIDs); err != nil {
			return nil, err
		}
		if err := user.SetRoles(*req.RoleIDs); err != nil {
			return nil, err
		}
		rolesChanged = true
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if rolesChanged {
		if err := s.userRepo.SaveUserRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	s.publishDomainEvents(ctx, user)
	return ToUserResponse(user), nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Update(ctx, user)
}

// Delete deletes a user and their role assignments
func (s *UserService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.userRepo.DeleteForTenant(ctx, tenantID, userID)
}

func (s *UserService) validateRoleIDs(ctx context.Context, tenantID uuid.UUID, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, tenantID, roleIDs)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]bool, len(roles))
	for _, role := range roles {
		found[role.ID] = true
	}
	for _, id := range roleIDs {
		if !found[id] {
			return shared.NewDomainError("INVALID_ROLE", "Role not found: "+id.String())
		}
	}
	return nil
}

func (s *UserService) publishDomainEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	user.ClearDomainEvents()
}
