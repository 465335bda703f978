package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/pedezap/backend/internal/application/catalog"
	deliveryapp "github.com/pedezap/backend/internal/application/delivery"
	identityapp "github.com/pedezap/backend/internal/application/identity"
	inventoryapp "github.com/pedezap/backend/internal/application/inventory"
	orderingapp "github.com/pedezap/backend/internal/application/ordering"
	promotionapp "github.com/pedezap/backend/internal/application/promotion"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/pedezap/backend/internal/infrastructure/auth"
	"github.com/pedezap/backend/internal/infrastructure/cache"
	"github.com/pedezap/backend/internal/infrastructure/config"
	"github.com/pedezap/backend/internal/infrastructure/event"
	"github.com/pedezap/backend/internal/infrastructure/logger"
	"github.com/pedezap/backend/internal/infrastructure/persistence"
	"github.com/pedezap/backend/internal/infrastructure/storage"
	"github.com/pedezap/backend/internal/infrastructure/telemetry"
	"github.com/pedezap/backend/internal/interfaces/http/handler"
	"github.com/pedezap/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PedeZap backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracer, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis, used as the tenant resolution cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	tenantCache := cache.NewRedisTenantCache(redisClient, cache.WithTenantCacheLogger(log))
	log.Info("Redis connected")

	// Object storage for product images
	images, err := storage.NewS3ImageStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	moduleRepo := persistence.NewGormModuleRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	unitRepo := persistence.NewGormUnitOfMeasureRepository(db.DB)
	groupRepo := persistence.NewGormComplementGroupRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	cityRepo := persistence.NewGormCityRepository(db.DB)
	hoodRepo := persistence.NewGormNeighborhoodRepository(db.DB)
	hoodGroupRepo := persistence.NewGormNeighborhoodGroupRepository(db.DB)
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Transaction scopes for stock movements and order confirmation
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	orderingScope := persistence.NewGormOrderingTransactionScope(db.DB)

	// Domain event bus with the activity log subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogHandler(log))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, tenantCache)
	moduleService := identityapp.NewModuleService(moduleRepo, tenantRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService)

	productService := catalogapp.NewProductService(productRepo, categoryRepo, unitRepo, images)
	complementService := catalogapp.NewComplementService(groupRepo, productRepo)
	unitService := catalogapp.NewUnitService(unitRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)

	couponService := promotionapp.NewCouponService(couponRepo)

	feeResolver := delivery.NewFeeResolver(cityRepo, hoodRepo, hoodGroupRepo)
	areaService := deliveryapp.NewAreaService(cityRepo, hoodRepo, hoodGroupRepo)
	feeQuoteService := deliveryapp.NewFeeQuoteService(feeResolver)

	ingredientService := inventoryapp.NewIngredientService(ingredientRepo)
	movementService := inventoryapp.NewMovementService(inventoryScope, movementRepo)

	checkoutService := orderingapp.NewCheckoutService(orderRepo, productRepo, groupRepo, couponRepo, feeResolver,
		orderingapp.WithCheckoutEventPublisher(eventBus))
	orderService := orderingapp.NewOrderService(orderRepo, orderingScope,
		orderingapp.WithOrderEventPublisher(eventBus))

	// HTTP handlers
	handlers := router.Handlers{
		System:     handler.NewSystemHandler(db),
		Tenant:     handler.NewTenantHandler(tenantService, moduleService),
		Auth:       handler.NewAuthHandler(authService),
		Product:    handler.NewProductHandler(productService),
		Catalog:    handler.NewCatalogHandler(complementService, unitService, categoryService),
		Coupon:     handler.NewCouponHandler(couponService),
		Delivery:   handler.NewDeliveryHandler(areaService),
		Inventory:  handler.NewInventoryHandler(ingredientService, movementService),
		Order:      handler.NewOrderHandler(orderService),
		Storefront: handler.NewStorefrontHandler(
			productService,
			complementService,
			categoryService,
			feeQuoteService,
			areaService,
			couponService,
			checkoutService,
			orderService,
		),
	}

	engine := router.New(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Tenants:    tenantService,
	}, handlers)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Block until an interrupt or termination signal arrives
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
