package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/infrastructure/auth"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	TenantName string `json:"tenant_name" binding:"required,min=1,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse carries the authenticated user and their token pair
type LoginResponse struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes the caller's tokens
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterTenantRequest creates a tenant together with its admin user
type RegisterTenantRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email,max=200"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required,min=8,max=128"`
	TrialDays     int    `json:"trial_days" binding:"omitempty,min=1,max=365"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,max=200"`
	Plan         *string `json:"plan" binding:"omitempty,oneof=free standard enterprise"`
	Status       *string `json:"status" binding:"omitempty,oneof=active suspended"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	Plan         string     `json:"plan"`
	ContactEmail string     `json:"contact_email,omitempty"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// ToTenantResponse converts a tenant aggregate to its response form
func ToTenantResponse(tenant *identity.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:           tenant.ID,
		Name:         tenant.Name,
		Status:       string(tenant.Status),
		Plan:         string(tenant.Plan),
		ContactEmail: tenant.ContactEmail,
		TrialEndsAt:  tenant.TrialEndsAt,
		CreatedAt:    tenant.CreatedAt,
		UpdatedAt:    tenant.UpdatedAt,
		Version:      tenant.Version,
	}
}

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8,max=128"`
	DisplayName string      `json:"display_name" binding:"omitempty,max=200"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
}

// UpdateUserRequest represents a request to update a user
type UpdateUserRequest struct {
	DisplayName *string      `json:"display_name" binding:"omitempty,max=200"`
	Status      *string      `json:"status" binding:"omitempty,oneof=active deactivated"`
	RoleIDs     *[]uuid.UUID `json:"role_ids"`
}

// ChangePasswordRequest represents a password change by the user themselves
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name,omitempty"`
	Status      string      `json:"status"`
	RoleIDs     []uuid.UUID `json:"role_ids"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Version     int         `json:"version"`
}

// ToUserResponse converts a user aggregate to its response form
func ToUserResponse(user *identity.User) *UserResponse {
	roleIDs := user.RoleIDs
	if roleIDs == nil {
		roleIDs = make([]uuid.UUID, 0)
	}

	return &UserResponse{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Status:      string(user.Status),
		RoleIDs:     roleIDs,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		Version:     user.Version,
	}
}

// CreateRoleRequest represents a request to create a new role
type CreateRoleRequest struct {
	Name          string      `json:"name" binding:"required,min=1,max=100"`
	Description   string      `json:"description" binding:"omitempty,max=500"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

// UpdateRoleRequest represents a request to update a role
type UpdateRoleRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string      `json:"description" binding:"omitempty,max=500"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID            uuid.UUID   `json:"id"`
	TenantID      uuid.UUID   `json:"tenant_id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	IsSystem      bool        `json:"is_system"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Version       int         `json:"version"`
}

// ToRoleResponse converts a role aggregate to its response form
func ToRoleResponse(role *identity.Role) *RoleResponse {
	permissionIDs := role.PermissionIDs
	if permissionIDs == nil {
		permissionIDs = make([]uuid.UUID, 0)
	}

	return &RoleResponse{
		ID:            role.ID,
		TenantID:      role.TenantID,
		Name:          role.Name,
		Description:   role.Description,
		IsSystem:      role.IsSystem,
		PermissionIDs: permissionIDs,
		CreatedAt:     role.CreatedAt,
		UpdatedAt:     role.UpdatedAt,
		Version:       role.Version,
	}
}

// PermissionResponse represents a permission in API responses
type PermissionResponse struct {
	ID       uuid.UUID `json:"id"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	Key      string    `json:"key"`
}

// ToPermissionResponse converts a permission to its response form
func ToPermissionResponse(permission *identity.Permission) *PermissionResponse {
	return &PermissionResponse{
		ID:       permission.ID,
		Resource: permission.Resource,
		Action:   permission.Action,
		Key:      permission.Key(),
	}
}
