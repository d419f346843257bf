package handler

import (
	"github.com/gin-gonic/gin"
	analyticsapp "github.com/stockflow/backend/internal/application/analytics"
)

// AnalyticsHandler handles reporting endpoints
type AnalyticsHandler struct {
	BaseHandler
	dashboardService *analyticsapp.DashboardService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(dashboardService *analyticsapp.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{dashboardService: dashboardService}
}

// Dashboard returns the tenant's aggregate counters
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	resp, err := h.dashboardService.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Trends returns monthly order counts and revenue for the last six
// months, oldest first
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	resp, err := h.dashboardService.Trends(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Utilization returns per-warehouse capacity utilization
func (h *AnalyticsHandler) Utilization(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	resp, err := h.dashboardService.Utilization(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
