package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.Order, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*trade.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]*trade.Order, error) {
	args := m.Called(ctx, tenantID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindNonCancelled(ctx context.Context, tenantID uuid.UUID) ([]*trade.Order, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Order), args.Error(1)
}

// MockShipmentRepository is a mock implementation of trade.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Create(ctx context.Context, shipment *trade.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, shipment *trade.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*trade.Shipment, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ExistsByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.ShipmentView, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*trade.ShipmentView), args.Get(1).(int64), args.Error(2)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDriverRepository is a mock implementation of logistics.DriverRepository
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *logistics.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *logistics.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*logistics.Driver, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*logistics.Driver, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*logistics.Driver), args.Get(1).(int64), args.Error(2)
}

func (m *MockDriverRepository) ExistsByLicenseNumber(ctx context.Context, tenantID uuid.UUID, licenseNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, licenseNumber)
	return args.Bool(0), args.Error(1)
}

// MockVehicleRepository is a mock implementation of logistics.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *logistics.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *logistics.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*logistics.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*logistics.Vehicle, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*logistics.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRepository) ExistsByPlateNumber(ctx context.Context, tenantID uuid.UUID, plateNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, plateNumber)
	return args.Bool(0), args.Error(1)
}

func newTestProduct(t *testing.T, tenantID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", decimal.NewFromInt(10))
	require.NoError(t, err)
	return product
}

func newTestOrder(t *testing.T, tenantID uuid.UUID) *trade.Order {
	t.Helper()
	item, err := trade.NewOrderItem(uuid.New(), 2, decimal.NewFromInt(25))
	require.NoError(t, err)
	order, err := trade.NewOrder(tenantID, "Acme Corp", []trade.OrderItem{item})
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates an order with validated items", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo)

		product := newTestProduct(t, tenantID)
		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		orderRepo.On("Create", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateOrderRequest{
			CustomerName: "Acme Corp",
			Items: []OrderItemRequest{
				{ProductID: product.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Len(t, resp.Items, 1)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(30)))
		assert.NotEmpty(t, resp.OrderNumber)
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo)

		productID := uuid.New()
		productRepo.On("FindByIDForTenant", ctx, tenantID, productID).Return(nil, shared.ErrNotFound)

		resp, err := service.Create(ctx, tenantID, CreateOrderRequest{
			CustomerName: "Acme Corp",
			Items: []OrderItemRequest{
				{ProductID: productID, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			},
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Create")
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("confirms a pending order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository))

		order := newTestOrder(t, tenantID)
		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(nil)

		resp, err := service.UpdateStatus(ctx, tenantID, order.ID, UpdateOrderStatusRequest{Status: "confirmed"})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("refuses the shipped transition", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository))

		order := newTestOrder(t, tenantID)
		require.NoError(t, order.Confirm())
		order.ClearDomainEvents()
		orderRepo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(order, nil)

		resp, err := service.UpdateStatus(ctx, tenantID, order.ID, UpdateOrderStatusRequest{Status: "shipped"})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Update")
	})

	t.Run("propagates not found", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository))

		orderID := uuid.New()
		orderRepo.On("FindByIDForTenant", ctx, tenantID, orderID).Return(nil, shared.ErrNotFound)

		_, err := service.UpdateStatus(ctx, tenantID, orderID, UpdateOrderStatusRequest{Status: "confirmed"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
