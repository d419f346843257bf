package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
)

// OrderService handles order-related business operations
type OrderService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, productRepo catalog.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new order with its items
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	items := make([]trade.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, line.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found: "+line.ProductID.String())
			}
			return nil, err
		}

		item, err := trade.NewOrderItem(line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order, err := trade.NewOrder(tenantID, req.CustomerName, items)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	return ToOrderResponse(order), nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// List returns orders for a tenant with pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*OrderResponse], error) {
	orders, total, err := s.orderRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateStatus transitions an order to a new status. The shipped status
// is reserved for shipment creation, which performs the transition
// atomically with the shipment insert.
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	switch trade.OrderStatus(req.Status) {
	case trade.OrderStatusConfirmed:
		err = order.Confirm()
	case trade.OrderStatusDelivered:
		err = order.MarkDelivered()
	case trade.OrderStatusCancelled:
		err = order.Cancel()
	case trade.OrderStatusShipped:
		err = shared.NewDomainError("INVALID_STATE", "Orders are marked shipped by creating a shipment")
	default:
		err = shared.NewDomainError("INVALID_STATE", "Unsupported status transition")
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	return ToOrderResponse(order), nil
}

// Delete deletes an order and its items
func (s *OrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.orderRepo.DeleteForTenant(ctx, tenantID, orderID)
}

func (s *OrderService) publishDomainEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
