package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	orderingapp "github.com/pedezap/backend/internal/application/ordering"
)

// OrderHandler handles back-office order management
type OrderHandler struct {
	BaseHandler
	orders *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns orders with status filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.orders.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber returns an order by its per-tenant sequential number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		h.BadRequest(c, "Invalid order number")
		return
	}

	order, err := h.orders.GetByNumber(c.Request.Context(), tenantID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AdvanceStatus moves an order through its lifecycle. Confirming is the
// step that consumes stock and redeems the coupon.
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderingapp.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.AdvanceStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
