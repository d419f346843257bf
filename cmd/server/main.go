package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	analyticsapp "github.com/stockflow/backend/internal/application/analytics"
	catalogapp "github.com/stockflow/backend/internal/application/catalog"
	identityapp "github.com/stockflow/backend/internal/application/identity"
	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
	logisticsapp "github.com/stockflow/backend/internal/application/logistics"
	tradeapp "github.com/stockflow/backend/internal/application/trade"
	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/event"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/infrastructure/telemetry"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/router"
	"github.com/stockflow/backend/internal/interfaces/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting StockFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:       gormLog,
		TraceEnabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist backed by Redis; fall back to the in-process map
	// when Redis is unreachable so a single-node deploy still works
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	stockRepo := persistence.NewGormStockItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	tradeScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, roleRepo, jwtService, blacklist)
	userService := identityapp.NewUserService(userRepo, roleRepo)
	roleService := identityapp.NewRoleService(roleRepo, permissionRepo)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, roleRepo, permissionRepo)
	productService := catalogapp.NewProductService(productRepo)
	warehouseService := logisticsapp.NewWarehouseService(warehouseRepo)
	fleetService := logisticsapp.NewFleetService(vehicleRepo, driverRepo)
	stockService := inventoryapp.NewStockService(stockRepo, productRepo, warehouseRepo, cfg.Inventory.LowStockThreshold)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo)
	shipmentService := tradeapp.NewShipmentService(tradeScope, shipmentRepo, orderRepo, driverRepo, vehicleRepo)
	dashboardService := analyticsapp.NewDashboardService(orderRepo, productRepo, stockRepo, warehouseRepo, cfg.Inventory.LowStockThreshold)

	// Event bus and websocket gateway
	eventBus := event.NewInMemoryEventBus(log)
	gateway := ws.NewGateway(jwtService, cfg.WebSocket, log)
	eventBus.Subscribe(ws.NewEventNotifier(gateway))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	tenantService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	warehouseService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	shipmentService.SetEventPublisher(eventBus)

	// HTTP layer
	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Gateway:        gateway,

		System:    handler.NewSystemHandler(db.DB, cfg.App.Name),
		Auth:      handler.NewAuthHandler(authService, userService),
		Tenant:    handler.NewTenantHandler(tenantService),
		User:      handler.NewUserHandler(userService),
		Role:      handler.NewRoleHandler(roleService),
		Product:   handler.NewProductHandler(productService),
		Warehouse: handler.NewWarehouseHandler(warehouseService),
		Fleet:     handler.NewFleetHandler(fleetService),
		Stock:     handler.NewStockHandler(stockService),
		Order:     handler.NewOrderHandler(orderService),
		Shipment:  handler.NewShipmentHandler(shipmentService),
		Analytics: handler.NewAnalyticsHandler(dashboardService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
