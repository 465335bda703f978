package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/pedezap/backend/internal/application/inventory"
)

// InventoryHandler handles ingredients and stock movements
type InventoryHandler struct {
	BaseHandler
	ingredients *inventoryapp.IngredientService
	movements   *inventoryapp.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ingredients *inventoryapp.IngredientService, movements *inventoryapp.MovementService) *InventoryHandler {
	return &InventoryHandler{
		ingredients: ingredients,
		movements:   movements,
	}
}

// CreateIngredient adds an ingredient
func (h *InventoryHandler) CreateIngredient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req inventoryapp.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	ingredient, err := h.ingredients.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ingredient)
}

// ListIngredients returns the tenant's ingredients
func (h *InventoryHandler) ListIngredients(c *gin.Context) {
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

	ingredients, err := h.ingredients.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredients)
}

// ListIngredientsBelowMinimum returns ingredients under their minimum
// stock level
func (h *InventoryHandler) ListIngredientsBelowMinimum(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	ingredients, err := h.ingredients.ListBelowMinimum(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredients)
}

// UpdateIngredient changes an ingredient
func (h *InventoryHandler) UpdateIngredient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req inventoryapp.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	ingredient, err := h.ingredients.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredient)
}

// ToggleIngredient flips an ingredient between active and inactive
func (h *InventoryHandler) ToggleIngredient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ingredient, err := h.ingredients.Toggle(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredient)
}

// DeleteIngredient removes an ingredient
func (h *InventoryHandler) DeleteIngredient(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	if err := h.ingredients.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordMovement records a manual product stock movement, cascading to
// the linked ingredient when configured
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req inventoryapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.movements.RecordMovement(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RecordIngredientMovement records a manual ingredient stock movement
func (h *InventoryHandler) RecordIngredientMovement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req inventoryapp.RecordIngredientMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.movements.RecordIngredientMovement(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListMovements returns the stock movement ledger, newest first
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.movements.ListMovements(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
