package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// DeleteForTenant deletes a user by ID within the tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByIDForTenant finds a user by ID within the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within the tenant
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindAllForTenant returns all users for the tenant with pagination
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*User, int64, error)

	// ExistsByEmail checks if an email is already taken within the tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)

	// SaveUserRoles replaces the user's role assignments
	SaveUserRoles(ctx context.Context, user *User) error

	// LoadUserRoles loads the user's role assignments
	LoadUserRoles(ctx context.Context, user *User) error
}
