package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create creates a new order with its items
	Create(ctx context.Context, order *Order) error

	// Update updates an existing order
	Update(ctx context.Context, order *Order) error

	// DeleteForTenant deletes an order by ID within the tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByIDForTenant finds an order with its items within the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindAllForTenant returns all orders for the tenant with pagination
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)

	// CountForTenant returns the number of orders for the tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// FindCreatedSince returns non-cancelled orders with items created
	// on or after the given time, used for revenue aggregation
	FindCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]*Order, error)

	// FindNonCancelled returns all non-cancelled orders with their items
	FindNonCancelled(ctx context.Context, tenantID uuid.UUID) ([]*Order, error)
}

// ShipmentView is a shipment joined with order, driver, and vehicle data
type ShipmentView struct {
	Shipment
	OrderNumber        string
	DriverName         string
	VehiclePlateNumber string
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	// Create creates a new shipment
	Create(ctx context.Context, shipment *Shipment) error

	// Update updates an existing shipment
	Update(ctx context.Context, shipment *Shipment) error

	// FindByIDForTenant finds a shipment by ID within the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Shipment, error)

	// FindByOrderID finds the shipment for an order, if any
	FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*Shipment, error)

	// ExistsByOrderID checks whether a shipment already exists for the order
	ExistsByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (bool, error)

	// FindAllForTenant returns shipments newest first, joined with
	// order, driver, and vehicle data
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*ShipmentView, int64, error)
}

// MonthlyOrderStat is one month of order count and revenue
type MonthlyOrderStat struct {
	Year    int
	Month   time.Month
	Count   int64
	Revenue decimal.Decimal
}
