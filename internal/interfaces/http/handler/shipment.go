package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/stockflow/backend/internal/application/trade"
)

// ShipmentHandler handles shipment endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *tradeapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *tradeapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// Create creates a shipment for an order and marks the order shipped.
// Both writes happen in one transaction.
func (h *ShipmentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tradeapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.shipmentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves a shipment by ID
func (h *ShipmentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	shipmentID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	resp, err := h.shipmentService.GetByID(c.Request.Context(), tenantID, shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns shipments with pagination
func (h *ShipmentHandler) List(c *gin.Context) {
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

	result, err := h.shipmentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// UpdateStatus transitions a shipment to a new status, updating the
// driver, vehicle and order alongside
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	shipmentID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	var req tradeapp.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.shipmentService.UpdateStatus(c.Request.Context(), tenantID, shipmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
