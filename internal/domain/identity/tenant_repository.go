package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *Tenant) error

	// Update updates an existing tenant
	Update(ctx context.Context, tenant *Tenant) error

	// Delete deletes a tenant by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByName finds a tenant by its unique name
	FindByName(ctx context.Context, name string) (*Tenant, error)

	// FindAll returns all tenants with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Tenant, int64, error)

	// ExistsByName checks if a tenant name is already taken
	ExistsByName(ctx context.Context, name string) (bool, error)
}
