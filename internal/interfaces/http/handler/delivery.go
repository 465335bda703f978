package handler

import (
	"github.com/gin-gonic/gin"
	deliveryapp "github.com/pedezap/backend/internal/application/delivery"
)

// DeliveryHandler handles delivery area administration
type DeliveryHandler struct {
	BaseHandler
	areas *deliveryapp.AreaService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(areas *deliveryapp.AreaService) *DeliveryHandler {
	return &DeliveryHandler{areas: areas}
}

// CreateCity adds a serviced city
func (h *DeliveryHandler) CreateCity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req deliveryapp.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	city, err := h.areas.CreateCity(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, city)
}

// ListCities returns the tenant's serviced cities
func (h *DeliveryHandler) ListCities(c *gin.Context) {
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

	cities, err := h.areas.ListCities(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cities)
}

// UpdateCity changes a city's name or fallback fee
func (h *DeliveryHandler) UpdateCity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	var req deliveryapp.CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	city, err := h.areas.UpdateCity(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, city)
}

// ToggleCity flips a city between active and inactive
func (h *DeliveryHandler) ToggleCity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	city, err := h.areas.ToggleCity(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, city)
}

// DeleteCity removes a city without neighborhoods
func (h *DeliveryHandler) DeleteCity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	if err := h.areas.DeleteCity(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateNeighborhood adds a neighborhood to a city
func (h *DeliveryHandler) CreateNeighborhood(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req deliveryapp.NeighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	neighborhood, err := h.areas.CreateNeighborhood(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, neighborhood)
}

// ListNeighborhoods returns the neighborhoods of a city
func (h *DeliveryHandler) ListNeighborhoods(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	cityID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	neighborhoods, err := h.areas.ListNeighborhoods(c.Request.Context(), tenantID, cityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, neighborhoods)
}

// SetNeighborhoodFee sets or clears a neighborhood's own fee
func (h *DeliveryHandler) SetNeighborhoodFee(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid neighborhood ID")
		return
	}

	var req deliveryapp.NeighborhoodFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	neighborhood, err := h.areas.SetNeighborhoodFee(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, neighborhood)
}

// AssignNeighborhoodGroup attaches a neighborhood to a fee group
func (h *DeliveryHandler) AssignNeighborhoodGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid neighborhood ID")
		return
	}

	var req deliveryapp.NeighborhoodGroupAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	neighborhood, err := h.areas.AssignNeighborhoodGroup(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, neighborhood)
}

// ToggleNeighborhood flips a neighborhood between active and inactive
func (h *DeliveryHandler) ToggleNeighborhood(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid neighborhood ID")
		return
	}

	neighborhood, err := h.areas.ToggleNeighborhood(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, neighborhood)
}

// DeleteNeighborhood removes a neighborhood
func (h *DeliveryHandler) DeleteNeighborhood(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid neighborhood ID")
		return
	}

	if err := h.areas.DeleteNeighborhood(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateGroup adds a neighborhood fee group
func (h *DeliveryHandler) CreateGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req deliveryapp.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	group, err := h.areas.CreateGroup(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// ListGroups returns the tenant's fee groups
func (h *DeliveryHandler) ListGroups(c *gin.Context) {
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

	groups, err := h.areas.ListGroups(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// UpdateGroup changes a fee group
func (h *DeliveryHandler) UpdateGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req deliveryapp.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	group, err := h.areas.UpdateGroup(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// DeleteGroup removes a fee group
func (h *DeliveryHandler) DeleteGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	if err := h.areas.DeleteGroup(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
