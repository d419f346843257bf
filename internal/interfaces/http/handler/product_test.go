package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/stockflow/backend/internal/application/catalog"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

var _ catalog.ProductRepository = (*mockProductRepository)(nil)

// newProductEngine wires a ProductHandler behind a stand-in for the JWT
// middleware that injects the tenant into the request context
func newProductEngine(repo catalog.ProductRepository, tenantID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, tenantID.String())
		c.Next()
	})

	h := NewProductHandler(catalogapp.NewProductService(repo))
	engine.POST("/api/v1/catalog/products", h.Create)
	engine.GET("/api/v1/catalog/products/:id", h.Get)
	engine.GET("/api/v1/catalog/products", h.List)
	engine.DELETE("/api/v1/catalog/products/:id", h.Delete)
	return engine
}

func TestProductHandler_Create(t *testing.T) {
	tenantID := uuid.New()
	repo := new(mockProductRepository)
	repo.On("ExistsBySKU", mock.Anything, tenantID, "SKU-1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	engine := newProductEngine(repo, tenantID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products",
		strings.NewReader(`{"sku":"SKU-1","name":"Widget","price":"9.99"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "SKU-1")
	repo.AssertExpectations(t)
}

func TestProductHandler_Create_DuplicateSKU(t *testing.T) {
	tenantID := uuid.New()
	repo := new(mockProductRepository)
	repo.On("ExistsBySKU", mock.Anything, tenantID, "SKU-1").Return(true, nil)

	engine := newProductEngine(repo, tenantID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products",
		strings.NewReader(`{"sku":"SKU-1","name":"Widget","price":"9.99"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	engine := newProductEngine(new(mockProductRepository), uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products",
		strings.NewReader(`{"sku":"SKU-1"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	repo := new(mockProductRepository)
	repo.On("FindByIDForTenant", mock.Anything, tenantID, productID).Return(nil, shared.ErrNotFound)

	engine := newProductEngine(repo, tenantID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/"+productID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	engine := newProductEngine(new(mockProductRepository), uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_Pagination(t *testing.T) {
	tenantID := uuid.New()

	product, err := catalog.NewProduct(tenantID, "SKU-1", "Widget", decimal.NewFromInt(10))
	require.NoError(t, err)

	repo := new(mockProductRepository)
	repo.On("FindAllForTenant", mock.Anything, tenantID, mock.AnythingOfType("shared.Filter")).
		Return([]*catalog.Product{product}, int64(41), nil)

	engine := newProductEngine(repo, tenantID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?page=2&page_size=20", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":41`)
	assert.Contains(t, w.Body.String(), `"page":2`)
	assert.Contains(t, w.Body.String(), `"total_pages":3`)
}

func TestProductHandler_Delete(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	repo := new(mockProductRepository)
	repo.On("DeleteForTenant", mock.Anything, tenantID, productID).Return(nil)

	engine := newProductEngine(repo, tenantID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/catalog/products/"+productID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
