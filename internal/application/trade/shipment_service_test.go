package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubTransactionScope runs the transactional function against the
// given mock repositories without a real database transaction.
type stubTransactionScope struct {
	orderRepo    trade.OrderRepository
	shipmentRepo trade.ShipmentRepository
}

func (s *stubTransactionScope) OrderRepo() trade.OrderRepository       { return s.orderRepo }
func (s *stubTransactionScope) ShipmentRepo() trade.ShipmentRepository { return s.shipmentRepo }

func (s *stubTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

type shipmentFixture struct {
	service      *ShipmentService
	orderRepo    *MockOrderRepository
	shipmentRepo *MockShipmentRepository
	driverRepo   *MockDriverRepository
	vehicleRepo  *MockVehicleRepository
}

func newShipmentFixture() *shipmentFixture {
	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	driverRepo := new(MockDriverRepository)
	vehicleRepo := new(MockVehicleRepository)
	scope := &stubTransactionScope{orderRepo: orderRepo, shipmentRepo: shipmentRepo}
	return &shipmentFixture{
		service:      NewShipmentService(scope, shipmentRepo, orderRepo, driverRepo, vehicleRepo),
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		driverRepo:   driverRepo,
		vehicleRepo:  vehicleRepo,
	}
}

func newTestDriver(t *testing.T, tenantID uuid.UUID) *logistics.Driver {
	t.Helper()
	driver, err := logistics.NewDriver(tenantID, "Sam Porter", "LIC-42")
	require.NoError(t, err)
	return driver
}

func newTestVehicle(t *testing.T, tenantID uuid.UUID) *logistics.Vehicle {
	t.Helper()
	vehicle, err := logistics.NewVehicle(tenantID, "ABC-123", "Sprinter")
	require.NoError(t, err)
	return vehicle
}

func TestShipmentService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates the shipment and ships the order together", func(t *testing.T) {
		f := newShipmentFixture()

		order := newTestOrder(t, tenantID)
		require.NoError(t, order.Confirm())
		order.ClearDomainEvents()
		driver := newTestDriver(t, tenantID)
		vehicle := newTestVehicle(t, tenantID)

		f.orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		f.shipmentRepo.On("ExistsByOrderID", ctx, tenantID, order.ID).Return(false, nil)
		f.driverRepo.On("FindByIDForTenant", ctx, tenantID, driver.ID).Return(driver, nil)
		f.vehicleRepo.On("FindByIDForTenant", ctx, tenantID, vehicle.ID).Return(vehicle, nil)
		f.shipmentRepo.On("Create", ctx, mock.AnythingOfType("*trade.Shipment")).Return(nil)
		f.orderRepo.On("Update", ctx, order).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreateShipmentRequest{
			OrderID:        order.ID,
			DriverID:       driver.ID,
			VehicleID:      vehicle.ID,
			TrackingNumber: "TRK-001",
		})

		require.NoError(t, err)
		assert.Equal(t, "assigned", resp.Status)
		assert.Equal(t, order.ID, resp.OrderID)
		assert.Equal(t, trade.OrderStatusShipped, order.Status)
		f.shipmentRepo.AssertExpectations(t)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("rejects an order that already has a shipment", func(t *testing.T) {
		f := newShipmentFixture()

		order := newTestOrder(t, tenantID)
		require.NoError(t, order.Confirm())
		order.ClearDomainEvents()

		f.orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		f.shipmentRepo.On("ExistsByOrderID", ctx, tenantID, order.ID).Return(true, nil)

		resp, err := f.service.Create(ctx, tenantID, CreateShipmentRequest{
			OrderID:        order.ID,
			DriverID:       uuid.New(),
			VehicleID:      uuid.New(),
			TrackingNumber: "TRK-002",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.shipmentRepo.AssertNotCalled(t, "Create")
	})

	t.Run("propagates order not found", func(t *testing.T) {
		f := newShipmentFixture()

		orderID := uuid.New()
		f.orderRepo.On("FindByIDForTenant", ctx, tenantID, orderID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, tenantID, CreateShipmentRequest{
			OrderID:        orderID,
			DriverID:       uuid.New(),
			VehicleID:      uuid.New(),
			TrackingNumber: "TRK-003",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects a cancelled order", func(t *testing.T) {
		f := newShipmentFixture()

		order := newTestOrder(t, tenantID)
		require.NoError(t, order.Cancel())
		order.ClearDomainEvents()
		driver := newTestDriver(t, tenantID)
		vehicle := newTestVehicle(t, tenantID)

		f.orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		f.shipmentRepo.On("ExistsByOrderID", ctx, tenantID, order.ID).Return(false, nil)
		f.driverRepo.On("FindByIDForTenant", ctx, tenantID, driver.ID).Return(driver, nil)
		f.vehicleRepo.On("FindByIDForTenant", ctx, tenantID, vehicle.ID).Return(vehicle, nil)

		resp, err := f.service.Create(ctx, tenantID, CreateShipmentRequest{
			OrderID:        order.ID,
			DriverID:       driver.ID,
			VehicleID:      vehicle.ID,
			TrackingNumber: "TRK-004",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		f.shipmentRepo.AssertNotCalled(t, "Create")
		f.orderRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects an unavailable driver", func(t *testing.T) {
		f := newShipmentFixture()

		order := newTestOrder(t, tenantID)
		require.NoError(t, order.Confirm())
		order.ClearDomainEvents()
		driver := newTestDriver(t, tenantID)
		require.NoError(t, driver.StartDelivery())

		f.orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		f.shipmentRepo.On("ExistsByOrderID", ctx, tenantID, order.ID).Return(false, nil)
		f.driverRepo.On("FindByIDForTenant", ctx, tenantID, driver.ID).Return(driver, nil)

		resp, err := f.service.Create(ctx, tenantID, CreateShipmentRequest{
			OrderID:        order.ID,
			DriverID:       driver.ID,
			VehicleID:      uuid.New(),
			TrackingNumber: "TRK-005",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestShipmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newAssignedShipment := func(t *testing.T, driverID, vehicleID uuid.UUID) *trade.Shipment {
		t.Helper()
		shipment, err := trade.NewShipment(tenantID, uuid.New(), driverID, vehicleID, "TRK-100")
		require.NoError(t, err)
		shipment.ClearDomainEvents()
		return shipment
	}

	t.Run("departing marks driver and vehicle busy", func(t *testing.T) {
		f := newShipmentFixture()

		driver := newTestDriver(t, tenantID)
		vehicle := newTestVehicle(t, tenantID)
		shipment := newAssignedShipment(t, driver.ID, vehicle.ID)

		f.shipmentRepo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)
		f.driverRepo.On("FindByIDForTenant", ctx, tenantID, driver.ID).Return(driver, nil)
		f.driverRepo.On("Update", ctx, driver).Return(nil)
		f.vehicleRepo.On("FindByIDForTenant", ctx, tenantID, vehicle.ID).Return(vehicle, nil)
		f.vehicleRepo.On("Update", ctx, vehicle).Return(nil)
		f.shipmentRepo.On("Update", ctx, shipment).Return(nil)

		resp, err := f.service.UpdateStatus(ctx, tenantID, shipment.ID, UpdateShipmentStatusRequest{Status: "in_transit"})

		require.NoError(t, err)
		assert.Equal(t, "in_transit", resp.Status)
		assert.Equal(t, logistics.DriverStatusOnDelivery, driver.Status)
		assert.Equal(t, logistics.VehicleStatusInUse, vehicle.Status)
	})

	t.Run("delivery releases driver and vehicle and completes the order", func(t *testing.T) {
		f := newShipmentFixture()

		order := newTestOrder(t, tenantID)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.MarkShipped())
		order.ClearDomainEvents()

		driver := newTestDriver(t, tenantID)
		require.NoError(t, driver.StartDelivery())
		vehicle := newTestVehicle(t, tenantID)
		require.NoError(t, vehicle.MarkInUse())

		shipment, err := trade.NewShipment(tenantID, order.ID, driver.ID, vehicle.ID, "TRK-101")
		require.NoError(t, err)
		require.NoError(t, shipment.Depart())
		shipment.ClearDomainEvents()

		f.shipmentRepo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)
		f.orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		f.orderRepo.On("Update", ctx, order).Return(nil)
		f.driverRepo.On("FindByIDForTenant", ctx, tenantID, driver.ID).Return(driver, nil)
		f.driverRepo.On("Update", ctx, driver).Return(nil)
		f.vehicleRepo.On("FindByIDForTenant", ctx, tenantID, vehicle.ID).Return(vehicle, nil)
		f.vehicleRepo.On("Update", ctx, vehicle).Return(nil)
		f.shipmentRepo.On("Update", ctx, shipment).Return(nil)

		resp, err := f.service.UpdateStatus(ctx, tenantID, shipment.ID, UpdateShipmentStatusRequest{Status: "delivered"})

		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
		assert.NotNil(t, resp.DeliveredAt)
		assert.Equal(t, trade.OrderStatusDelivered, order.Status)
		assert.Equal(t, logistics.DriverStatusAvailable, driver.Status)
		assert.Equal(t, logistics.VehicleStatusAvailable, vehicle.Status)
	})

	t.Run("rejects delivery before departure", func(t *testing.T) {
		f := newShipmentFixture()

		shipment := newAssignedShipment(t, uuid.New(), uuid.New())
		f.shipmentRepo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)

		resp, err := f.service.UpdateStatus(ctx, tenantID, shipment.ID, UpdateShipmentStatusRequest{Status: "delivered"})

		assert.Nil(t, resp)
		assert.Error(t, err)
		f.shipmentRepo.AssertNotCalled(t, "Update")
	})
}
