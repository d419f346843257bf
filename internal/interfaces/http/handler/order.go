package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/stockflow/backend/internal/application/trade"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create creates a new order
func (h *OrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns orders with pagination
func (h *OrderHandler) List(c *gin.Context) {
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

	result, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// UpdateStatus transitions an order to a new status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.orderService.UpdateStatus(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	orderID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), tenantID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
