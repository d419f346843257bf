package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/stockflow/backend/internal/application/identity"
)

// RoleHandler handles role and permission endpoints
type RoleHandler struct {
	BaseHandler
	roleService *identityapp.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *identityapp.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Create creates a new role
func (h *RoleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.roleService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get retrieves a role by ID with its permissions
func (h *RoleHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	resp, err := h.roleService.GetByID(c.Request.Context(), tenantID, roleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns roles with pagination
func (h *RoleHandler) List(c *gin.Context) {
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

	result, err := h.roleService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Update updates a role
func (h *RoleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	var req identityapp.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.roleService.Update(c.Request.Context(), tenantID, roleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a role. System roles cannot be deleted.
func (h *RoleHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), tenantID, roleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPermissions returns the platform-wide permission catalog
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleService.ListPermissions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, permissions)
}
