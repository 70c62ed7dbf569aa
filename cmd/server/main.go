package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	purchasingapp "github.com/storefront/backend/internal/application/purchasing"
	salesapp "github.com/storefront/backend/internal/application/sales"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
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

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel,
		logger.WithSlowThreshold(cfg.Log.SlowQueryThreshold))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	orderRepo := persistence.NewGormCustomerOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)

	// Transactional scope shared by everything that writes through the ledger
	scope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	ledgerService := inventoryapp.NewLedgerService(scope, movementRepo)
	inventoryService := inventoryapp.NewInventoryService(scope, inventoryRepo, ledgerService)
	productService := catalogapp.NewProductService(productRepo, inventoryRepo)
	saleService := salesapp.NewSaleService(scope, ledgerService, saleRepo, orderRepo, productRepo, cfg.Sales.TaxRate)
	purchaseOrderService := purchasingapp.NewPurchaseOrderService(scope, ledgerService, purchaseOrderRepo, productRepo)

	// Idempotency protection for sale creation
	if cfg.Sales.IdempotencyEnabled {
		store := newIdempotencyStore(cfg, log)
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
		saleService.SetIdempotencyStore(store, shared.IdempotencyConfig{
			TTL:     cfg.Sales.IdempotencyTTL,
			Enabled: true,
		})
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, ledgerService)
	saleHandler := handler.NewSaleHandler(saleService)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, access log, security
	// headers, CORS, body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication for API routes; system endpoints stay public
	if cfg.JWT.Secret != "" {
		r.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths: []string{
				"/api/v1/system/ping",
				"/api/v1/system/info",
			},
			Logger: log,
		}))
	}

	// Catalog domain
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)

	// Inventory domain
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("", inventoryHandler.List)
	inventoryRoutes.GET("/low-stock", inventoryHandler.ListLowStock)
	inventoryRoutes.POST("/movements", inventoryHandler.RecordMovement)
	inventoryRoutes.GET("/:productID", inventoryHandler.Get)
	inventoryRoutes.POST("/:productID/adjust", inventoryHandler.Adjust)
	inventoryRoutes.PUT("/:productID/reorder-policy", inventoryHandler.SetReorderPolicy)
	inventoryRoutes.GET("/:productID/movements", inventoryHandler.Movements)

	// Sales domain
	saleRoutes := router.NewDomainGroup("sales", "/sales")
	saleRoutes.POST("", saleHandler.Create)
	saleRoutes.GET("", saleHandler.List)
	saleRoutes.POST("/from-order/:orderID", saleHandler.CreateFromOrder)
	saleRoutes.GET("/:id", saleHandler.GetByID)
	saleRoutes.PUT("/:id/payment-status", saleHandler.UpdatePaymentStatus)
	saleRoutes.PUT("/:id/payment-method", saleHandler.UpdatePaymentMethod)

	// Purchasing domain
	purchaseOrderRoutes := router.NewDomainGroup("purchasing", "/purchase-orders")
	purchaseOrderRoutes.POST("", purchaseOrderHandler.Create)
	purchaseOrderRoutes.GET("", purchaseOrderHandler.List)
	purchaseOrderRoutes.GET("/stats/status", purchaseOrderHandler.StatusSummary)
	purchaseOrderRoutes.GET("/:id", purchaseOrderHandler.GetByID)
	purchaseOrderRoutes.PUT("/:id/status", purchaseOrderHandler.UpdateStatus)
	purchaseOrderRoutes.POST("/:id/receive", purchaseOrderHandler.Receive)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(inventoryRoutes).
		Register(saleRoutes).
		Register(purchaseOrderRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newIdempotencyStore prefers redis when configured and falls back to the
// in-process store, which is sufficient for single-instance deployments.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Host != "" {
		store, err := cache.NewRedisIdempotencyStore(&cfg.Redis)
		if err == nil {
			log.Info("Idempotency store: redis", zap.String("addr", cfg.Redis.Addr()))
			return store
		}
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
	}
	log.Info("Idempotency store: in-memory")
	return cache.NewInMemoryIdempotencyStore()
}
