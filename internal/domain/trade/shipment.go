package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusAssigned  ShipmentStatus = "assigned"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// Shipment represents the delivery of one order.
// At most one shipment exists per order; the database enforces this
// with a unique index on order_id.
type Shipment struct {
	shared.TenantAggregateRoot
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	DriverID       uuid.UUID      `gorm:"type:uuid;not null"`
	VehicleID      uuid.UUID      `gorm:"type:uuid;not null"`
	TrackingNumber string         `gorm:"type:varchar(100);not null"`
	Status         ShipmentStatus `gorm:"type:varchar(20);not null;default:'assigned'"`
	DeliveredAt    *time.Time
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new shipment in assigned status
func NewShipment(tenantID, orderID, driverID, vehicleID uuid.UUID, trackingNumber string) (*Shipment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	if driverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRIVER_ID", "Driver ID cannot be empty")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE_ID", "Vehicle ID cannot be empty")
	}

	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number cannot be empty")
	}
	if len(trackingNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number cannot exceed 100 characters")
	}

	shipment := &Shipment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		DriverID:            driverID,
		VehicleID:           vehicleID,
		TrackingNumber:      trackingNumber,
		Status:              ShipmentStatusAssigned,
	}

	shipment.AddDomainEvent(NewShipmentCreatedEvent(shipment))

	return shipment, nil
}

// Depart moves the shipment from assigned to in transit
func (s *Shipment) Depart() error {
	if s.Status != ShipmentStatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Only assigned shipments can depart")
	}

	s.Status = ShipmentStatusInTransit
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewShipmentStatusChangedEvent(s))

	return nil
}

// MarkDelivered moves the shipment from in transit to delivered
func (s *Shipment) MarkDelivered() error {
	if s.Status != ShipmentStatusInTransit {
		return shared.NewDomainError("INVALID_STATE", "Only in-transit shipments can be delivered")
	}

	now := time.Now()
	s.Status = ShipmentStatusDelivered
	s.DeliveredAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewShipmentStatusChangedEvent(s))

	return nil
}

// TransitionTo applies a status change following the
// assigned, in_transit, delivered progression
func (s *Shipment) TransitionTo(status ShipmentStatus) error {
	switch status {
	case ShipmentStatusInTransit:
		return s.Depart()
	case ShipmentStatusDelivered:
		return s.MarkDelivered()
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown shipment status")
	}
}
