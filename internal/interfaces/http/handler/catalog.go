package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/pedezap/backend/internal/application/catalog"
)

// CatalogHandler handles complement groups, units of measure and
// categories
type CatalogHandler struct {
	BaseHandler
	complements *catalogapp.ComplementService
	units       *catalogapp.UnitService
	categories  *catalogapp.CategoryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	complements *catalogapp.ComplementService,
	units *catalogapp.UnitService,
	categories *catalogapp.CategoryService,
) *CatalogHandler {
	return &CatalogHandler{
		complements: complements,
		units:       units,
		categories:  categories,
	}
}

// CreateComplementGroup adds a complement group to a product
func (h *CatalogHandler) CreateComplementGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req catalogapp.CreateComplementGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	group, err := h.complements.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// ListComplementGroups returns the complement groups of a product
func (h *CatalogHandler) ListComplementGroups(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	groups, err := h.complements.ListByProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// UpdateComplementGroup changes a complement group's rules
func (h *CatalogHandler) UpdateComplementGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req catalogapp.UpdateComplementGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	group, err := h.complements.Update(c.Request.Context(), tenantID, groupID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// ToggleComplementGroup flips a group between active and inactive
func (h *CatalogHandler) ToggleComplementGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	group, err := h.complements.Toggle(c.Request.Context(), tenantID, groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// DeleteComplementGroup removes a group and its items
func (h *CatalogHandler) DeleteComplementGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	if err := h.complements.Delete(c.Request.Context(), tenantID, groupID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddComplementItem adds an option to a complement group
func (h *CatalogHandler) AddComplementItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req catalogapp.ComplementItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	group, err := h.complements.AddItem(c.Request.Context(), tenantID, groupID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// UpdateComplementItem changes an option's name or price
func (h *CatalogHandler) UpdateComplementItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req catalogapp.ComplementItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	group, err := h.complements.UpdateItem(c.Request.Context(), tenantID, groupID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// ToggleComplementItem flips an option between active and inactive
func (h *CatalogHandler) ToggleComplementItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	group, err := h.complements.ToggleItem(c.Request.Context(), tenantID, groupID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// CreateUnit adds a unit of measure
func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req catalogapp.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	unit, err := h.units.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// ListUnits returns the tenant's units of measure
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	units, err := h.units.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

// UpdateUnit changes a unit of measure
func (h *CatalogHandler) UpdateUnit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req catalogapp.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	unit, err := h.units.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// ToggleUnit flips a unit between active and inactive
func (h *CatalogHandler) ToggleUnit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	unit, err := h.units.Toggle(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// DeleteUnit removes a unit of measure
func (h *CatalogHandler) DeleteUnit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	if err := h.units.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateCategory adds a product category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req catalogapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListCategories returns the tenant's categories in display order
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	categories, err := h.categories.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// UpdateCategory changes a category
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// ToggleCategory flips a category between active and inactive
func (h *CatalogHandler) ToggleCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.Toggle(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// DeleteCategory removes a category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
