package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for product-related operations; SKU is
// unique within a tenant.
type Product struct {
	shared.TenantAggregateRoot
	SKU         string          `gorm:"type:varchar(100);not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(tenantID uuid.UUID, sku, name string, price decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 strings.ToUpper(strings.TrimSpace(sku)),
		Name:                strings.TrimSpace(name),
		Price:               price,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// ChangePrice changes the product's price
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// Activate makes the product available again
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("PRODUCT_DISCONTINUED", "Discontinued products cannot be reactivated")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate temporarily removes the product from sale
func (p *Product) Deactivate() error {
	if p.Status != ProductStatusActive {
		return shared.NewDomainError("NOT_ACTIVE", "Only active products can be deactivated")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Discontinue permanently removes the product from sale
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}

	skuRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	if !skuRegex.MatchString(sku) {
		return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
	}

	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
