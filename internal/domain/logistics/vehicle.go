package logistics

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// VehicleStatus represents the status of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusInUse       VehicleStatus = "in_use"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// Vehicle represents a delivery vehicle in the fleet.
// Plate number is unique within a tenant.
type Vehicle struct {
	shared.TenantAggregateRoot
	PlateNumber string        `gorm:"type:varchar(50);not null"`
	Model       string        `gorm:"type:varchar(100)"`
	Status      VehicleStatus `gorm:"type:varchar(20);not null;default:'available'"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a new vehicle with required fields
func NewVehicle(tenantID uuid.UUID, plateNumber, model string) (*Vehicle, error) {
	plateNumber = strings.ToUpper(strings.TrimSpace(plateNumber))
	if plateNumber == "" {
		return nil, shared.NewDomainError("INVALID_PLATE_NUMBER", "Plate number cannot be empty")
	}
	if len(plateNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_PLATE_NUMBER", "Plate number cannot exceed 50 characters")
	}

	return &Vehicle{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PlateNumber:         plateNumber,
		Model:               strings.TrimSpace(model),
		Status:              VehicleStatusAvailable,
	}, nil
}

// MarkInUse marks the vehicle as assigned to a shipment
func (v *Vehicle) MarkInUse() error {
	if v.Status != VehicleStatusAvailable {
		return shared.NewDomainError("VEHICLE_UNAVAILABLE", "Vehicle is not available")
	}

	v.Status = VehicleStatusInUse
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// MarkAvailable returns the vehicle to the available pool
func (v *Vehicle) MarkAvailable() error {
	if v.Status == VehicleStatusRetired {
		return shared.NewDomainError("VEHICLE_RETIRED", "Retired vehicles cannot be made available")
	}

	v.Status = VehicleStatusAvailable
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SendToMaintenance moves the vehicle to maintenance
func (v *Vehicle) SendToMaintenance() error {
	if v.Status == VehicleStatusRetired {
		return shared.NewDomainError("VEHICLE_RETIRED", "Retired vehicles cannot be maintained")
	}

	v.Status = VehicleStatusMaintenance
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// Retire permanently removes the vehicle from the fleet
func (v *Vehicle) Retire() error {
	if v.Status == VehicleStatusRetired {
		return shared.NewDomainError("ALREADY_RETIRED", "Vehicle is already retired")
	}

	v.Status = VehicleStatusRetired
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// IsAvailable returns true if the vehicle can be assigned
func (v *Vehicle) IsAvailable() bool {
	return v.Status == VehicleStatusAvailable
}
