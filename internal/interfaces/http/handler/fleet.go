package handler

import (
	"github.com/gin-gonic/gin"
	logisticsapp "github.com/stockflow/backend/internal/application/logistics"
)

// FleetHandler handles vehicle and driver endpoints
type FleetHandler struct {
	BaseHandler
	fleetService *logisticsapp.FleetService
}

// NewFleetHandler creates a new FleetHandler
func NewFleetHandler(fleetService *logisticsapp.FleetService) *FleetHandler {
	return &FleetHandler{fleetService: fleetService}
}

// CreateVehicle creates a new vehicle
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req logisticsapp.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.fleetService.CreateVehicle(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetVehicle retrieves a vehicle by ID
func (h *FleetHandler) GetVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	vehicleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	resp, err := h.fleetService.GetVehicle(c.Request.Context(), tenantID, vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListVehicles returns vehicles with pagination
func (h *FleetHandler) ListVehicles(c *gin.Context) {
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

	result, err := h.fleetService.ListVehicles(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// UpdateVehicle updates a vehicle
func (h *FleetHandler) UpdateVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	vehicleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req logisticsapp.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.fleetService.UpdateVehicle(c.Request.Context(), tenantID, vehicleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteVehicle deletes a vehicle
func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	vehicleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.fleetService.DeleteVehicle(c.Request.Context(), tenantID, vehicleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateDriver creates a new driver
func (h *FleetHandler) CreateDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req logisticsapp.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.fleetService.CreateDriver(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetDriver retrieves a driver by ID
func (h *FleetHandler) GetDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	driverID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	resp, err := h.fleetService.GetDriver(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListDrivers returns drivers with pagination
func (h *FleetHandler) ListDrivers(c *gin.Context) {
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

	result, err := h.fleetService.ListDrivers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// UpdateDriver updates a driver
func (h *FleetHandler) UpdateDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	driverID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	var req logisticsapp.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.fleetService.UpdateDriver(c.Request.Context(), tenantID, driverID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteDriver deletes a driver
func (h *FleetHandler) DeleteDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	driverID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	if err := h.fleetService.DeleteDriver(c.Request.Context(), tenantID, driverID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
