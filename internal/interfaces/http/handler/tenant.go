package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/stockflow/backend/internal/application/identity"
)

// TenantHandler handles tenant endpoints. Register is public;
// everything else requires the admin role.
type TenantHandler struct {
	BaseHandler
	tenantService *identityapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identityapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Register provisions a new tenant with its admin role and admin user
func (h *TenantHandler) Register(c *gin.Context) {
	var req identityapp.RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.tenantService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves the caller's tenant
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	resp, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns tenants with pagination. Platform-operator surface.
func (h *TenantHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Delete deletes a tenant. Platform-operator surface.
func (h *TenantHandler) Delete(c *gin.Context) {
	tenantID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), tenantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Update updates the caller's tenant
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.tenantService.Update(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
