package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required,min=1,max=100"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active inactive discontinued"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToProductResponse converts a product aggregate to its response form
func ToProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		TenantID:    product.TenantID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
		Version:     product.Version,
	}
}
