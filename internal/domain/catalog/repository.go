package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// DeleteForTenant deletes a product by ID within the tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByIDForTenant finds a product by ID within the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by SKU within the tenant
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)

	// FindAllForTenant returns all products for the tenant with pagination
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Product, int64, error)

	// ExistsBySKU checks if a SKU is already taken within the tenant
	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)

	// CountForTenant returns the number of products for the tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
