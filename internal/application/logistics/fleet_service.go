package logistics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
)

// FleetService handles vehicle and driver operations
type FleetService struct {
	vehicleRepo logistics.VehicleRepository
	driverRepo  logistics.DriverRepository
}

// NewFleetService creates a new FleetService
func NewFleetService(vehicleRepo logistics.VehicleRepository, driverRepo logistics.DriverRepository) *FleetService {
	return &FleetService{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
	}
}

// CreateVehicle registers a new vehicle
func (s *FleetService) CreateVehicle(ctx context.Context, tenantID uuid.UUID, req CreateVehicleRequest) (*VehicleResponse, error) {
	exists, err := s.vehicleRepo.ExistsByPlateNumber(ctx, tenantID, req.PlateNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vehicle with this plate number already exists")
	}

	vehicle, err := logistics.NewVehicle(tenantID, req.PlateNumber, req.Model)
	if err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return ToVehicleResponse(vehicle), nil
}

// GetVehicle retrieves a vehicle by ID
func (s *FleetService) GetVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}
	return ToVehicleResponse(vehicle), nil
}

// ListVehicles returns vehicles for a tenant with pagination
func (s *FleetService) ListVehicles(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*VehicleResponse], error) {
	vehicles, total, err := s.vehicleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		responses = append(responses, ToVehicleResponse(vehicle))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateVehicle updates a vehicle's fields
func (s *FleetService) UpdateVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID, req UpdateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Model != nil {
		vehicle.Model = *req.Model
		vehicle.UpdatedAt = time.Now()
		vehicle.IncrementVersion()
	}

	if req.Status != nil && string(vehicle.Status) != *req.Status {
		if err := s.applyVehicleStatus(vehicle, logistics.VehicleStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return ToVehicleResponse(vehicle), nil
}

// DeleteVehicle deletes a vehicle
func (s *FleetService) DeleteVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	return s.vehicleRepo.DeleteForTenant(ctx, tenantID, vehicleID)
}

func (s *FleetService) applyVehicleStatus(vehicle *logistics.Vehicle, status logistics.VehicleStatus) error {
	switch status {
	case logistics.VehicleStatusAvailable:
		return vehicle.MarkAvailable()
	case logistics.VehicleStatusInUse:
		return vehicle.MarkInUse()
	case logistics.VehicleStatusMaintenance:
		return vehicle.SendToMaintenance()
	case logistics.VehicleStatusRetired:
		return vehicle.Retire()
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown vehicle status")
	}
}

// CreateDriver registers a new driver
func (s *FleetService) CreateDriver(ctx context.Context, tenantID uuid.UUID, req CreateDriverRequest) (*DriverResponse, error) {
	exists, err := s.driverRepo.ExistsByLicenseNumber(ctx, tenantID, req.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Driver with this license number already exists")
	}

	driver, err := logistics.NewDriver(tenantID, req.Name, req.LicenseNumber)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := driver.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return ToDriverResponse(driver), nil
}

// GetDriver retrieves a driver by ID
func (s *FleetService) GetDriver(ctx context.Context, tenantID, driverID uuid.UUID) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}
	return ToDriverResponse(driver), nil
}

// ListDrivers returns drivers for a tenant with pagination
func (s *FleetService) ListDrivers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*DriverResponse], error) {
	drivers, total, err := s.driverRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		responses = append(responses, ToDriverResponse(driver))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateDriver updates a driver's fields
func (s *FleetService) UpdateDriver(ctx context.Context, tenantID, driverID uuid.UUID, req UpdateDriverRequest) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		if err := driver.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if req.Status != nil && string(driver.Status) != *req.Status {
		if err := s.applyDriverStatus(driver, logistics.DriverStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return ToDriverResponse(driver), nil
}

// DeleteDriver deletes a driver
func (s *FleetService) DeleteDriver(ctx context.Context, tenantID, driverID uuid.UUID) error {
	return s.driverRepo.DeleteForTenant(ctx, tenantID, driverID)
}

func (s *FleetService) applyDriverStatus(driver *logistics.Driver, status logistics.DriverStatus) error {
	switch status {
	case logistics.DriverStatusAvailable:
		if driver.Status == logistics.DriverStatusOnDelivery {
			return driver.FinishDelivery()
		}
		return driver.ReturnToDuty()
	case logistics.DriverStatusOnDelivery:
		return driver.StartDelivery()
	case logistics.DriverStatusOffDuty:
		return driver.GoOffDuty()
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown driver status")
	}
}
