// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/pedezap/backend/internal/application/identity"
	"github.com/pedezap/backend/internal/infrastructure/auth"
	"github.com/pedezap/backend/internal/infrastructure/config"
	"github.com/pedezap/backend/internal/infrastructure/logger"
	"github.com/pedezap/backend/internal/interfaces/http/handler"
	"github.com/pedezap/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System     *handler.SystemHandler
	Tenant     *handler.TenantHandler
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Catalog    *handler.CatalogHandler
	Coupon     *handler.CouponHandler
	Delivery   *handler.DeliveryHandler
	Inventory  *handler.InventoryHandler
	Order      *handler.OrderHandler
	Storefront *handler.StorefrontHandler
}

// Dependencies carries what the middleware chain needs
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Tenants    *identityapp.TenantService
}

// New builds the gin engine with the full middleware chain and all
// routes mounted.
func New(deps Dependencies, h Handlers) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies); err != nil {
			deps.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	if deps.Config.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	if len(deps.Config.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	}
	if len(deps.Config.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	// Probes stay outside the versioned API
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	api.GET("/system/info", h.System.Info)

	registerStorefrontRoutes(api, deps, h)
	registerAuthRoutes(api, deps, h)
	registerBackofficeRoutes(api, deps, h)

	return engine
}

// registerStorefrontRoutes mounts the public customer-facing API.
// Every route resolves the tenant from the :slug parameter.
func registerStorefrontRoutes(api *gin.RouterGroup, deps Dependencies, h Handlers) {
	store := api.Group("/store/:slug")
	store.Use(middleware.TenantResolver(deps.Tenants))

	store.GET("", h.Storefront.GetStore)
	store.GET("/menu", h.Storefront.Menu)
	store.GET("/products/:id/complements", h.Storefront.ProductComplements)
	store.GET("/cities", h.Storefront.Cities)
	store.GET("/delivery-fee", h.Storefront.FeeQuote)
	store.POST("/coupons/validate", h.Storefront.ValidateCoupon)
	store.POST("/checkout", h.Storefront.Checkout)
	store.GET("/orders/:number", h.Storefront.OrderStatus)
}

// registerAuthRoutes mounts login. The tenant is resolved from the
// X-Tenant-Slug header or the Host domain, never from the token.
func registerAuthRoutes(api *gin.RouterGroup, deps Dependencies, h Handlers) {
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.TenantResolver(deps.Tenants))

	authGroup.POST("/login", h.Auth.Login)
}

// registerBackofficeRoutes mounts the JWT-protected management API
func registerBackofficeRoutes(api *gin.RouterGroup, deps Dependencies, h Handlers) {
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(deps.JWTService))

	// Tenant provisioning and lifecycle, owner only
	tenants := admin.Group("/tenants")
	tenants.Use(middleware.RequireRole("owner"))
	tenants.POST("", h.Tenant.Create)
	tenants.GET("", h.Tenant.List)
	tenants.GET("/:id", h.Tenant.Get)
	tenants.PUT("/:id", h.Tenant.Update)
	tenants.PUT("/:id/delivery-defaults", h.Tenant.SetDeliveryDefaults)
	tenants.PUT("/:id/domain", h.Tenant.SetDomain)
	tenants.PATCH("/:id/status", h.Tenant.ChangeStatus)
	tenants.GET("/:id/modules", h.Tenant.ListModules)
	tenants.POST("/:id/modules/:moduleId", h.Tenant.EnableModule)
	tenants.DELETE("/:id/modules/:moduleId", h.Tenant.DisableModule)

	// Back-office users
	users := admin.Group("/users")
	users.GET("", h.Auth.ListUsers)
	users.POST("", middleware.RequireRole("owner", "manager"), h.Auth.CreateUser)
	users.PATCH("/:id/toggle", middleware.RequireRole("owner", "manager"), h.Auth.ToggleUser)

	// Product catalog
	products := admin.Group("/products")
	products.POST("", h.Product.Create)
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)
	products.PUT("/:id", h.Product.Update)
	products.PATCH("/:id/toggle", h.Product.Toggle)
	products.DELETE("/:id", h.Product.Delete)
	products.PUT("/:id/ingredient", h.Product.LinkIngredient)
	products.DELETE("/:id/ingredient", h.Product.UnlinkIngredient)
	products.POST("/:id/image", h.Product.UploadImage)
	products.GET("/:id/complement-groups", h.Catalog.ListComplementGroups)

	groups := admin.Group("/complement-groups")
	groups.POST("", h.Catalog.CreateComplementGroup)
	groups.PUT("/:id", h.Catalog.UpdateComplementGroup)
	groups.PATCH("/:id/toggle", h.Catalog.ToggleComplementGroup)
	groups.DELETE("/:id", h.Catalog.DeleteComplementGroup)
	groups.POST("/:id/items", h.Catalog.AddComplementItem)
	groups.PUT("/:id/items/:itemId", h.Catalog.UpdateComplementItem)
	groups.PATCH("/:id/items/:itemId/toggle", h.Catalog.ToggleComplementItem)

	units := admin.Group("/units")
	units.POST("", h.Catalog.CreateUnit)
	units.GET("", h.Catalog.ListUnits)
	units.PUT("/:id", h.Catalog.UpdateUnit)
	units.PATCH("/:id/toggle", h.Catalog.ToggleUnit)
	units.DELETE("/:id", h.Catalog.DeleteUnit)

	categories := admin.Group("/categories")
	categories.POST("", h.Catalog.CreateCategory)
	categories.GET("", h.Catalog.ListCategories)
	categories.PUT("/:id", h.Catalog.UpdateCategory)
	categories.PATCH("/:id/toggle", h.Catalog.ToggleCategory)
	categories.DELETE("/:id", h.Catalog.DeleteCategory)

	// Coupons
	coupons := admin.Group("/coupons")
	coupons.POST("", h.Coupon.Create)
	coupons.GET("", h.Coupon.List)
	coupons.GET("/:id", h.Coupon.Get)
	coupons.PUT("/:id", h.Coupon.Update)
	coupons.PATCH("/:id/toggle", h.Coupon.Toggle)
	coupons.DELETE("/:id", h.Coupon.Delete)
	coupons.POST("/validate", h.Coupon.Validate)

	// Delivery areas
	delivery := admin.Group("/delivery")
	delivery.POST("/cities", h.Delivery.CreateCity)
	delivery.GET("/cities", h.Delivery.ListCities)
	delivery.PUT("/cities/:id", h.Delivery.UpdateCity)
	delivery.PATCH("/cities/:id/toggle", h.Delivery.ToggleCity)
	delivery.DELETE("/cities/:id", h.Delivery.DeleteCity)
	delivery.GET("/cities/:id/neighborhoods", h.Delivery.ListNeighborhoods)
	delivery.POST("/neighborhoods", h.Delivery.CreateNeighborhood)
	delivery.PUT("/neighborhoods/:id/fee", h.Delivery.SetNeighborhoodFee)
	delivery.PUT("/neighborhoods/:id/group", h.Delivery.AssignNeighborhoodGroup)
	delivery.PATCH("/neighborhoods/:id/toggle", h.Delivery.ToggleNeighborhood)
	delivery.DELETE("/neighborhoods/:id", h.Delivery.DeleteNeighborhood)
	delivery.POST("/groups", h.Delivery.CreateGroup)
	delivery.GET("/groups", h.Delivery.ListGroups)
	delivery.PUT("/groups/:id", h.Delivery.UpdateGroup)
	delivery.DELETE("/groups/:id", h.Delivery.DeleteGroup)

	// Inventory
	inventory := admin.Group("/inventory")
	inventory.POST("/ingredients", h.Inventory.CreateIngredient)
	inventory.GET("/ingredients", h.Inventory.ListIngredients)
	inventory.GET("/ingredients/below-minimum", h.Inventory.ListIngredientsBelowMinimum)
	inventory.PUT("/ingredients/:id", h.Inventory.UpdateIngredient)
	inventory.PATCH("/ingredients/:id/toggle", h.Inventory.ToggleIngredient)
	inventory.DELETE("/ingredients/:id", h.Inventory.DeleteIngredient)
	inventory.POST("/movements", h.Inventory.RecordMovement)
	inventory.POST("/movements/ingredients", h.Inventory.RecordIngredientMovement)
	inventory.GET("/movements", h.Inventory.ListMovements)

	// Orders
	orders := admin.Group("/orders")
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)
	orders.GET("/number/:number", h.Order.GetByNumber)
	orders.PATCH("/:id/status", h.Order.AdvanceStatus)
}
