package handler

import (
	"github.com/gin-gonic/gin"
	logisticsapp "github.com/stockflow/backend/internal/application/logistics"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *logisticsapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *logisticsapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create creates a new warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req logisticsapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.warehouseService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves a warehouse by ID
func (h *WarehouseHandler) Get(c *gin.Context) {
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

	resp, err := h.warehouseService.GetByID(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns warehouses with pagination
func (h *WarehouseHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.warehouseService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Update updates a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
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

	var req logisticsapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.warehouseService.Update(c.Request.Context(), tenantID, warehouseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a warehouse
func (h *WarehouseHandler) Delete(c *gin.Context) {
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

	if err := h.warehouseService.Delete(c.Request.Context(), tenantID, warehouseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
