package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bomapp "github.com/erp/query-service/internal/application/bom"
	mobileapp "github.com/erp/query-service/internal/application/mobile"
	productionapp "github.com/erp/query-service/internal/application/production"
	qualityapp "github.com/erp/query-service/internal/application/quality"
	warehouseapp "github.com/erp/query-service/internal/application/warehouse"
	"github.com/erp/query-service/internal/infrastructure/auth"
	"github.com/erp/query-service/internal/infrastructure/cache"
	"github.com/erp/query-service/internal/infrastructure/config"
	"github.com/erp/query-service/internal/infrastructure/logger"
	"github.com/erp/query-service/internal/infrastructure/persistence"
	"github.com/erp/query-service/internal/infrastructure/telemetry"
	"github.com/erp/query-service/internal/interfaces/http/handler"
	"github.com/erp/query-service/internal/interfaces/http/middleware"
	"github.com/erp/query-service/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ERP query service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("command_service", cfg.CQRS.CommandServiceURL),
	)

	ctx := context.Background()

	// Telemetry providers (no-op when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	var queryMetrics *telemetry.QueryMetrics
	if cfg.Telemetry.Enabled {
		queryMetrics, err = telemetry.NewQueryMetrics(meterProvider.Meter(cfg.Telemetry.ServiceName), log)
		if err != nil {
			log.Fatal("Failed to initialize query metrics", zap.Error(err))
		}
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
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

	// Database tracing and metrics (read paths only)
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		if _, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log); err != nil {
			log.Warn("Failed to register database metrics", zap.Error(err))
		}
	}

	// Dashboard cache: Redis when enabled, in-memory fallback, no-op otherwise
	cacheFactory := cache.NewQueryCacheFactory(cfg.Redis, cache.WithLogger(log))
	queryCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize query cache", zap.Error(err))
	}
	defer func() {
		if err := queryCache.Close(); err != nil {
			log.Error("Error closing query cache", zap.Error(err))
		}
	}()

	// Token revocations live in Redis, written by the command service on
	// logout and password change. Without Redis the check is skipped.
	var revocations auth.TokenRevocations
	if redisCache, ok := queryCache.(*cache.RedisQueryCache); ok {
		revocations = auth.NewRedisTokenRevocations(redisCache.GetClient())
		log.Info("Token revocation checks enabled via Redis")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	balanceRepo := persistence.NewGormBalanceRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)
	cycleCountRepo := persistence.NewGormCycleCountRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	outputRepo := persistence.NewGormOutputRepository(db.DB)
	machineRepo := persistence.NewGormMachineRepository(db.DB)
	bomRepo := persistence.NewGormBOMRepository(db.DB)
	wipRepo := persistence.NewGormWIPRepository(db.DB)
	oqcRepo := persistence.NewGormOQCRepository(db.DB)
	inspectionRepo := persistence.NewGormInspectionRepository(db.DB)
	ncrRepo := persistence.NewGormNCRRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	legacyRepo := persistence.NewGormLegacyStockRepository(db.DB)

	// Application services
	cacheTTL := cfg.Redis.CacheTTL
	productionService := productionapp.NewService(orderRepo, outputRepo, machineRepo, wipRepo,
		productionapp.WithCache(queryCache, cacheTTL),
		productionapp.WithMetrics(queryMetrics),
		productionapp.WithLogger(log),
	)
	bomService := bomapp.NewService(bomRepo, balanceRepo)
	warehouseService := warehouseapp.NewService(locationRepo, balanceRepo, movementRepo, reservationRepo, cycleCountRepo,
		warehouseapp.WithCache(queryCache, cacheTTL),
		warehouseapp.WithMetrics(queryMetrics),
		warehouseapp.WithLogger(log),
	)
	qualityService := qualityapp.NewService(oqcRepo, inspectionRepo, ncrRepo, transferRepo,
		qualityapp.WithCache(queryCache, cacheTTL),
		qualityapp.WithMetrics(queryMetrics),
		qualityapp.WithLogger(log),
	)
	mobileService := mobileapp.NewService(cfg.Mobile, orderRepo, outputRepo, balanceRepo, cycleCountRepo, reservationRepo, inspectionRepo,
		mobileapp.WithCache(queryCache, cacheTTL),
		mobileapp.WithMetrics(queryMetrics),
		mobileapp.WithLogger(log),
	)

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(cfg, db)
	inventoryHandler := handler.NewInventoryHandler(locationRepo, balanceRepo, movementRepo, reservationRepo, cycleCountRepo)
	productionHandler := handler.NewProductionHandler(productionService)
	bomHandler := handler.NewBOMHandler(bomService)
	qualityHandler := handler.NewQualityHandler(qualityService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	masterDataHandler := handler.NewMasterDataHandler(productRepo, userRepo, legacyRepo, wipRepo)
	mobileHandler := handler.NewMobileHandler(mobileService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order:
	// request ID, panic recovery, request logging, tracing, metrics,
	// security headers, CORS, body limit, read-only rejection, rate limit,
	// JWT verification.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		Metrics: queryMetrics,
		Enabled: cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Reject every write verb before routing. Reads flow on.
	engine.Use(middleware.ReadOnly(middleware.CQRSConfig{
		CommandServiceURL: cfg.CQRS.CommandServiceURL,
	}))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:  jwtService,
		Revocations: revocations,
		SkipPaths: []string{
			"/health",
			"/api/health",
			"/info",
			"/errors",
			"/api/v1/cqrs",
			"/api/v1/mobile/app-config",
		},
		Logger: log,
	}))

	// System routes live outside the versioned group
	systemHandler.RegisterRoutes(engine)

	// Mobile endpoints get device detection and per-device throttling
	mobileLimiter := middleware.NewRateLimiter(cfg.Mobile.RateLimitRequests, cfg.Mobile.RateLimitWindow)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.RegistrarFunc(systemHandler.RegisterAPIRoutes)).
		Register(inventoryHandler).
		Register(productionHandler).
		Register(bomHandler).
		Register(qualityHandler).
		Register(warehouseHandler).
		Register(masterDataHandler).
		RegisterGroup("/mobile", mobileHandler,
			middleware.DeviceDetection(),
			middleware.MobileOptimization(middleware.MobileConfig{
				CacheMaxAge: cfg.Mobile.CacheMaxAge,
				RateLimiter: mobileLimiter,
			}),
		)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
