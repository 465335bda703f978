package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/pedezap/backend/internal/application/identity"
	"github.com/pedezap/backend/internal/domain/identity"
)

// TenantHandler handles tenant provisioning and administration
type TenantHandler struct {
	BaseHandler
	tenants *identityapp.TenantService
	modules *identityapp.ModuleService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenants *identityapp.TenantService, modules *identityapp.ModuleService) *TenantHandler {
	return &TenantHandler{
		tenants: tenants,
		modules: modules,
	}
}

// ChangeStatusRequest switches a tenant between lifecycle states
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// Create provisions a new tenant together with its owner user
func (h *TenantHandler) Create(c *gin.Context) {
	var req identityapp.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tenant, err := h.tenants.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// List returns tenants with pagination
func (h *TenantHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.tenants.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single tenant
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenants.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Update changes a tenant's profile
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tenant, err := h.tenants.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// SetDeliveryDefaults changes the tenant-wide delivery fee fallback
func (h *TenantHandler) SetDeliveryDefaults(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.UpdateDeliveryDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tenant, err := h.tenants.SetDeliveryDefaults(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// SetDomain binds a custom domain to the tenant
func (h *TenantHandler) SetDomain(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.SetDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tenant, err := h.tenants.SetDomain(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// ChangeStatus activates, deactivates or suspends a tenant
func (h *TenantHandler) ChangeStatus(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tenant, err := h.tenants.ChangeStatus(c.Request.Context(), id, identity.TenantStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// ListModules returns modules and whether the tenant has them enabled
func (h *TenantHandler) ListModules(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	modules, err := h.modules.ListForTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, modules)
}

// EnableModule enables a module for the tenant
func (h *TenantHandler) EnableModule(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	moduleID, err := parseUUIDParam(c, "moduleId")
	if err != nil {
		h.BadRequest(c, "Invalid module ID")
		return
	}

	if err := h.modules.Enable(c.Request.Context(), id, moduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DisableModule disables a module for the tenant
func (h *TenantHandler) DisableModule(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	moduleID, err := parseUUIDParam(c, "moduleId")
	if err != nil {
		h.BadRequest(c, "Invalid module ID")
		return
	}

	if err := h.modules.Disable(c.Request.Context(), id, moduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
