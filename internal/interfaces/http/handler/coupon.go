package handler

import (
	"github.com/gin-gonic/gin"
	promotionapp "github.com/pedezap/backend/internal/application/promotion"
)

// CouponHandler handles coupon administration
type CouponHandler struct {
	BaseHandler
	coupons *promotionapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(coupons *promotionapp.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// Create adds a coupon
func (h *CouponHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req promotionapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	coupon, err := h.coupons.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, coupon)
}

// List returns coupons with pagination
func (h *CouponHandler) List(c *gin.Context) {
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

	result, err := h.coupons.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single coupon
func (h *CouponHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.coupons.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Update changes a coupon's rules
func (h *CouponHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	var req promotionapp.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	coupon, err := h.coupons.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Toggle flips a coupon between active and inactive
func (h *CouponHandler) Toggle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.coupons.Toggle(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Delete removes a coupon
func (h *CouponHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.coupons.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Validate checks a coupon against a purchase amount without
// consuming it
func (h *CouponHandler) Validate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req promotionapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.coupons.Validate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
