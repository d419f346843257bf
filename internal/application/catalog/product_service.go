package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)
	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns products for a tenant with pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ProductResponse], error) {
	products, total, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, ToProductResponse(product))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a product's fields
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.ChangePrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := s.applyStatus(product, catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)
	return ToProductResponse(product), nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}

func (s *ProductService) applyStatus(product *catalog.Product, status catalog.ProductStatus) error {
	if product.Status == status {
		return nil
	}
	switch status {
	case catalog.ProductStatusActive:
		return product.Activate()
	case catalog.ProductStatusInactive:
		return product.Deactivate()
	case catalog.ProductStatusDiscontinued:
		return product.Discontinue()
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}
}

func (s *ProductService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}
