package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
)

// StockHandler handles inventory stock endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Upsert sets the stock level for a (warehouse, product) pair, creating
// the row when it does not exist yet
func (h *StockHandler) Upsert(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req inventoryapp.UpsertStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.stockService.Upsert(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Lookup retrieves the stock row for a (warehouse, product) pair
func (h *StockHandler) Lookup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.stockService.Get(c.Request.Context(), tenantID, warehouseID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByWarehouse returns all stock rows of a warehouse joined with
// product data
func (h *StockHandler) ListByWarehouse(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	warehouseID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	items, err := h.stockService.ListByWarehouse(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListLowStock returns stock rows under the threshold. The threshold
// query parameter overrides the configured default.
func (h *StockHandler) ListLowStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var threshold int64
	if raw := c.Query("threshold"); raw != "" {
		threshold, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || threshold < 0 {
			h.BadRequest(c, "Invalid threshold")
			return
		}
	}

	resp, err := h.stockService.ListLowStock(c.Request.Context(), tenantID, threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
