package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pedezap/backend/internal/application/catalog"
	deliveryapp "github.com/pedezap/backend/internal/application/delivery"
	identityapp "github.com/pedezap/backend/internal/application/identity"
	orderingapp "github.com/pedezap/backend/internal/application/ordering"
	promotionapp "github.com/pedezap/backend/internal/application/promotion"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/interfaces/http/middleware"
)

// storefrontMenuPageSize bounds how many products a single menu page
// carries
const storefrontMenuPageSize = 100

// StorefrontHandler handles the public customer-facing endpoints. Every
// route runs behind the tenant resolver; no authentication is required.
type StorefrontHandler struct {
	BaseHandler
	products    *catalogapp.ProductService
	complements *catalogapp.ComplementService
	categories  *catalogapp.CategoryService
	fees        *deliveryapp.FeeQuoteService
	areas       *deliveryapp.AreaService
	coupons     *promotionapp.CouponService
	checkout    *orderingapp.CheckoutService
	orders      *orderingapp.OrderService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(
	products *catalogapp.ProductService,
	complements *catalogapp.ComplementService,
	categories *catalogapp.CategoryService,
	fees *deliveryapp.FeeQuoteService,
	areas *deliveryapp.AreaService,
	coupons *promotionapp.CouponService,
	checkout *orderingapp.CheckoutService,
	orders *orderingapp.OrderService,
) *StorefrontHandler {
	return &StorefrontHandler{
		products:    products,
		complements: complements,
		categories:  categories,
		fees:        fees,
		areas:       areas,
		coupons:     coupons,
		checkout:    checkout,
		orders:      orders,
	}
}

// MenuResponse carries the public menu of a store
type MenuResponse struct {
	Store      identityapp.StorefrontTenantResponse `json:"store"`
	Categories []catalogapp.CategoryResponse        `json:"categories"`
	Products   []catalogapp.ProductResponse         `json:"products"`
}

func (h *StorefrontHandler) tenant(c *gin.Context) (*identity.Tenant, bool) {
	tenant, ok := middleware.GetTenant(c)
	if !ok {
		h.InternalError(c, "Tenant not resolved")
		return nil, false
	}
	return tenant, true
}

// GetStore returns the public profile of the store
func (h *StorefrontHandler) GetStore(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	h.Success(c, identityapp.ToStorefrontTenantResponse(tenant))
}

// Menu returns the store profile, its categories and active products
func (h *StorefrontHandler) Menu(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	categories, err := h.categories.List(ctx, tenant.ID, listAllFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}

	products, err := h.products.List(ctx, tenant.ID, catalogapp.ProductListFilter{
		Status:   "active",
		Page:     page,
		PageSize: storefrontMenuPageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MenuResponse{
		Store:      identityapp.ToStorefrontTenantResponse(tenant),
		Categories: categories,
		Products:   products.Items,
	})
}

// ProductComplements returns the complement groups of a product so the
// customer can pick options before adding it to the cart
func (h *StorefrontHandler) ProductComplements(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	groups, err := h.complements.ListByProduct(c.Request.Context(), tenant.ID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// Cities returns the serviced cities so the checkout form can offer them
func (h *StorefrontHandler) Cities(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	cities, err := h.areas.ListCities(c.Request.Context(), tenant.ID, listAllFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cities)
}

// FeeQuote resolves the delivery fee for an address before checkout
func (h *StorefrontHandler) FeeQuote(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req deliveryapp.FeeQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	quote, err := h.fees.Quote(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// ValidateCoupon checks a coupon against the cart subtotal without
// consuming a use
func (h *StorefrontHandler) ValidateCoupon(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req promotionapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.coupons.Validate(c.Request.Context(), tenant.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Checkout places an order. The order starts pending: stock is only
// consumed and the coupon only redeemed when the store confirms it.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req orderingapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.checkout.Checkout(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// OrderStatus lets a customer follow their order by its number
func (h *StorefrontHandler) OrderStatus(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		h.BadRequest(c, "Invalid order number")
		return
	}

	order, err := h.orders.GetByNumber(c.Request.Context(), tenant.ID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
