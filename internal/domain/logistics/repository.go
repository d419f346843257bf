package logistics

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	Update(ctx context.Context, warehouse *Warehouse) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Warehouse, int64, error)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
}

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	Update(ctx context.Context, vehicle *Vehicle) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vehicle, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Vehicle, int64, error)
	ExistsByPlateNumber(ctx context.Context, tenantID uuid.UUID, plateNumber string) (bool, error)
}

// DriverRepository defines the interface for driver persistence
type DriverRepository interface {
	Create(ctx context.Context, driver *Driver) error
	Update(ctx context.Context, driver *Driver) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Driver, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Driver, int64, error)
	ExistsByLicenseNumber(ctx context.Context, tenantID uuid.UUID, licenseNumber string) (bool, error)
}
