package logistics

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// Warehouse represents a storage location.
// It is the aggregate root for warehouse-related operations; capacity
// is the total number of units the warehouse can hold.
type Warehouse struct {
	shared.TenantAggregateRoot
	Name     string          `gorm:"type:varchar(200);not null"`
	Location string          `gorm:"type:varchar(500)"`
	Capacity int64           `gorm:"not null;default:0"`
	Status   WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(tenantID uuid.UUID, name, location string, capacity int64) (*Warehouse, error) {
	if err := validateWarehouseName(name); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	warehouse := &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Location:            strings.TrimSpace(location),
		Capacity:            capacity,
		Status:              WarehouseStatusActive,
	}

	warehouse.AddDomainEvent(NewWarehouseCreatedEvent(warehouse))

	return warehouse, nil
}

// Update updates the warehouse's basic information
func (w *Warehouse) Update(name, location string, capacity int64) error {
	if err := validateWarehouseName(name); err != nil {
		return err
	}
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	w.Name = strings.TrimSpace(name)
	w.Location = strings.TrimSpace(location)
	w.Capacity = capacity
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Activate activates the warehouse
func (w *Warehouse) Activate() error {
	if w.Status == WarehouseStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Warehouse is already active")
	}

	w.Status = WarehouseStatusActive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Deactivate deactivates the warehouse
func (w *Warehouse) Deactivate() error {
	if w.Status == WarehouseStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Warehouse is already inactive")
	}

	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// IsActive returns true if the warehouse can receive stock
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}

func validateWarehouseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_WAREHOUSE_NAME", "Warehouse name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_WAREHOUSE_NAME", "Warehouse name cannot exceed 200 characters")
	}
	return nil
}
