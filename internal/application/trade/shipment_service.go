package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
)

// ShipmentService handles shipment dispatch and tracking.
// Creating a shipment and marking its order shipped happen in one
// transaction; an order can have at most one shipment.
type ShipmentService struct {
	scope          TransactionScope
	shipmentRepo   trade.ShipmentRepository
	orderRepo      trade.OrderRepository
	driverRepo     logistics.DriverRepository
	vehicleRepo    logistics.VehicleRepository
	eventPublisher shared.EventPublisher
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	scope TransactionScope,
	shipmentRepo trade.ShipmentRepository,
	orderRepo trade.OrderRepository,
	driverRepo logistics.DriverRepository,
	vehicleRepo logistics.VehicleRepository,
) *ShipmentService {
	return &ShipmentService{
		scope:        scope,
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		driverRepo:   driverRepo,
		vehicleRepo:  vehicleRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ShipmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create dispatches an order: it inserts the shipment and marks the
// order shipped in a single transaction
func (s *ShipmentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateShipmentRequest) (*ShipmentResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, req.OrderID)
	if err != nil {
		return nil, err
	}

	exists, err := s.shipmentRepo.ExistsByOrderID(ctx, tenantID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Order already has a shipment")
	}

	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, req.DriverID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_DRIVER", "Driver not found")
		}
		return nil, err
	}
	if !driver.IsAvailable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Driver is not available")
	}

	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, req.VehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle not found")
		}
		return nil, err
	}
	if !vehicle.IsAvailable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Vehicle is not available")
	}

	shipment, err := trade.NewShipment(tenantID, order.ID, driver.ID, vehicle.ID, req.TrackingNumber)
	if err != nil {
		return nil, err
	}

	if err := order.MarkShipped(); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ShipmentRepo().Create(ctx, shipment); err != nil {
			return err
		}
		return repos.OrderRepo().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, shipment.GetDomainEvents(), order.GetDomainEvents())
	shipment.ClearDomainEvents()
	order.ClearDomainEvents()

	return ToShipmentResponse(shipment), nil
}

// GetByID retrieves a shipment by ID
func (s *ShipmentService) GetByID(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// List returns shipments joined with order, driver, and vehicle data
func (s *ShipmentService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ShipmentListItemResponse], error) {
	views, total, err := s.shipmentRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ShipmentListItemResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, ToShipmentListItemResponse(view))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateStatus transitions a shipment to a new status and keeps the
// driver, vehicle, and order in step with it
func (s *ShipmentService) UpdateStatus(ctx context.Context, tenantID, shipmentID uuid.UUID, req UpdateShipmentStatusRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}

	switch trade.ShipmentStatus(req.Status) {
	case trade.ShipmentStatusInTransit:
		err = s.depart(ctx, tenantID, shipment)
	case trade.ShipmentStatusDelivered:
		err = s.complete(ctx, tenantID, shipment)
	default:
		err = shared.NewDomainError("INVALID_STATE", "Unsupported shipment status transition")
	}
	if err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, shipment.GetDomainEvents())
	shipment.ClearDomainEvents()

	return ToShipmentResponse(shipment), nil
}

func (s *ShipmentService) depart(ctx context.Context, tenantID uuid.UUID, shipment *trade.Shipment) error {
	if err := shipment.Depart(); err != nil {
		return err
	}

	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, shipment.DriverID)
	if err != nil {
		return err
	}
	if err := driver.StartDelivery(); err != nil {
		return err
	}
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return err
	}

	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, shipment.VehicleID)
	if err != nil {
		return err
	}
	if err := vehicle.MarkInUse(); err != nil {
		return err
	}
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *ShipmentService) complete(ctx context.Context, tenantID uuid.UUID, shipment *trade.Shipment) error {
	if err := shipment.MarkDelivered(); err != nil {
		return err
	}

	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, shipment.OrderID)
	if err != nil {
		return err
	}
	if err := order.MarkDelivered(); err != nil {
		return err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, shipment.DriverID)
	if err != nil {
		return err
	}
	if err := driver.FinishDelivery(); err != nil {
		return err
	}
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return err
	}

	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, shipment.VehicleID)
	if err != nil {
		return err
	}
	if err := vehicle.MarkAvailable(); err != nil {
		return err
	}
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *ShipmentService) publishDomainEvents(ctx context.Context, eventSets ...[]shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, events := range eventSets {
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}
