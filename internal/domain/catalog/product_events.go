package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant for Product
const AggregateTypeProduct = "Product"

// Product domain event types
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.TenantID),
		SKU:             product.SKU,
		Name:            product.Name,
		Price:           product.Price,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID, product.TenantID),
		SKU:             product.SKU,
		Name:            product.Name,
		Price:           product.Price,
	}
}
