package logistics

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// DriverStatus represents the status of a driver
type DriverStatus string

const (
	DriverStatusAvailable  DriverStatus = "available"
	DriverStatusOnDelivery DriverStatus = "on_delivery"
	DriverStatusOffDuty    DriverStatus = "off_duty"
)

// Driver represents a delivery driver in the fleet.
// License number is unique within a tenant.
type Driver struct {
	shared.TenantAggregateRoot
	Name          string       `gorm:"type:varchar(200);not null"`
	LicenseNumber string       `gorm:"type:varchar(100);not null"`
	Phone         string       `gorm:"type:varchar(50)"`
	Status        DriverStatus `gorm:"type:varchar(20);not null;default:'available'"`
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// NewDriver creates a new driver with required fields
func NewDriver(tenantID uuid.UUID, name, licenseNumber string) (*Driver, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DRIVER_NAME", "Driver name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_DRIVER_NAME", "Driver name cannot exceed 200 characters")
	}

	licenseNumber = strings.ToUpper(strings.TrimSpace(licenseNumber))
	if licenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_LICENSE_NUMBER", "License number cannot be empty")
	}
	if len(licenseNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_LICENSE_NUMBER", "License number cannot exceed 100 characters")
	}

	return &Driver{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		LicenseNumber:       licenseNumber,
		Status:              DriverStatusAvailable,
	}, nil
}

// SetPhone sets the driver's phone number
func (d *Driver) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	d.Phone = strings.TrimSpace(phone)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// StartDelivery marks the driver as out on a delivery
func (d *Driver) StartDelivery() error {
	if d.Status != DriverStatusAvailable {
		return shared.NewDomainError("DRIVER_UNAVAILABLE", "Driver is not available")
	}

	d.Status = DriverStatusOnDelivery
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// FinishDelivery returns the driver to the available pool
func (d *Driver) FinishDelivery() error {
	if d.Status != DriverStatusOnDelivery {
		return shared.NewDomainError("NOT_ON_DELIVERY", "Driver is not on a delivery")
	}

	d.Status = DriverStatusAvailable
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// GoOffDuty marks the driver as off duty
func (d *Driver) GoOffDuty() error {
	if d.Status == DriverStatusOnDelivery {
		return shared.NewDomainError("ON_DELIVERY", "Driver is currently on a delivery")
	}

	d.Status = DriverStatusOffDuty
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// ReturnToDuty marks an off-duty driver as available
func (d *Driver) ReturnToDuty() error {
	if d.Status != DriverStatusOffDuty {
		return shared.NewDomainError("NOT_OFF_DUTY", "Driver is not off duty")
	}

	d.Status = DriverStatusAvailable
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// IsAvailable returns true if the driver can be assigned
func (d *Driver) IsAvailable() bool {
	return d.Status == DriverStatusAvailable
}
