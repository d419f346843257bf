package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
)

// StockService handles stock level operations
type StockService struct {
	stockRepo         inventory.StockItemRepository
	productRepo       catalog.ProductRepository
	warehouseRepo     logistics.WarehouseRepository
	lowStockThreshold int64
	eventPublisher    shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockItemRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo logistics.WarehouseRepository,
	lowStockThreshold int64,
) *StockService {
	return &StockService{
		stockRepo:         stockRepo,
		productRepo:       productRepo,
		warehouseRepo:     warehouseRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Upsert sets the stock level for a (warehouse, product) pair, creating
// the row when it does not exist and overwriting the quantity when it
// does. The response carries the row joined with its product and
// warehouse data.
func (s *StockService) Upsert(ctx context.Context, tenantID uuid.UUID, req UpsertStockRequest) (*StockItemViewResponse, error) {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, req.WarehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse not found")
		}
		return nil, err
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	existing, err := s.stockRepo.FindByWarehouseAndProduct(ctx, tenantID, req.WarehouseID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var item *inventory.StockItem
	if existing != nil {
		if err := existing.SetQuantity(req.Quantity); err != nil {
			return nil, err
		}
		item = existing
	} else {
		item, err = inventory.NewStockItem(tenantID, req.WarehouseID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
	}

	if err := s.stockRepo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)
	return ToUpsertedStockView(item, product, warehouse), nil
}

// Get returns the stock row for a (warehouse, product) pair
func (s *StockService) Get(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*StockItemResponse, error) {
	item, err := s.stockRepo.FindByWarehouseAndProduct(ctx, tenantID, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	return ToStockItemResponse(item), nil
}

// ListByWarehouse returns all stock rows for a warehouse
func (s *StockService) ListByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]*StockItemViewResponse, error) {
	if _, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, warehouseID); err != nil {
		return nil, err
	}

	views, err := s.stockRepo.FindByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*StockItemViewResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, ToStockItemViewResponse(view))
	}
	return responses, nil
}

// ListLowStock returns stock rows under the threshold. A non-positive
// threshold falls back to the configured default.
func (s *StockService) ListLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) (*LowStockResponse, error) {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}

	views, err := s.stockRepo.FindBelowThreshold(ctx, tenantID, threshold)
	if err != nil {
		return nil, err
	}

	items := make([]*StockItemViewResponse, 0, len(views))
	for _, view := range views {
		items = append(items, ToStockItemViewResponse(view))
	}

	return &LowStockResponse{Threshold: threshold, Items: items}, nil
}

func (s *StockService) publishDomainEvents(ctx context.Context, item *inventory.StockItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}
