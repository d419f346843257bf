package logistics

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/logistics"
	"github.com/stockflow/backend/internal/domain/shared"
)

// WarehouseService handles warehouse-related business operations
type WarehouseService struct {
	warehouseRepo  logistics.WarehouseRepository
	eventPublisher shared.EventPublisher
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo logistics.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *WarehouseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this name already exists")
	}

	warehouse, err := logistics.NewWarehouse(tenantID, req.Name, req.Location, req.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, warehouse)
	return ToWarehouseResponse(warehouse), nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, tenantID, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponse(warehouse), nil
}

// List returns warehouses for a tenant with pagination
func (s *WarehouseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*WarehouseResponse], error) {
	warehouses, total, err := s.warehouseRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*WarehouseResponse, 0, len(warehouses))
	for _, warehouse := range warehouses {
		responses = append(responses, ToWarehouseResponse(warehouse))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a warehouse's fields
func (s *WarehouseService) Update(ctx context.Context, tenantID, warehouseID uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByIDForTenant(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Location != nil || req.Capacity != nil {
		name := warehouse.Name
		location := warehouse.Location
		capacity := warehouse.Capacity
		if req.Name != nil {
			name = *req.Name
		}
		if req.Location != nil {
			location = *req.Location
		}
		if req.Capacity != nil {
			capacity = *req.Capacity
		}
		if err := warehouse.Update(name, location, capacity); err != nil {
			return nil, err
		}
	}

	if req.Status != nil && string(warehouse.Status) != *req.Status {
		switch logistics.WarehouseStatus(*req.Status) {
		case logistics.WarehouseStatusActive:
			err = warehouse.Activate()
		case logistics.WarehouseStatusInactive:
			err = warehouse.Deactivate()
		default:
			err = shared.NewDomainError("INVALID_STATUS", "Unknown warehouse status")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, warehouse)
	return ToWarehouseResponse(warehouse), nil
}

// Delete deletes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, tenantID, warehouseID uuid.UUID) error {
	return s.warehouseRepo.DeleteForTenant(ctx, tenantID, warehouseID)
}

func (s *WarehouseService) publishDomainEvents(ctx context.Context, warehouse *logistics.Warehouse) {
	if s.eventPublisher == nil {
		return
	}
	events := warehouse.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	warehouse.ClearDomainEvents()
}
