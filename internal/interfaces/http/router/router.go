package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
	"github.com/stockflow/backend/internal/interfaces/ws"
)

// Dependencies holds everything the router needs
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Gateway        *ws.Gateway

	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Tenant    *handler.TenantHandler
	User      *handler.UserHandler
	Role      *handler.RoleHandler
	Product   *handler.ProductHandler
	Warehouse *handler.WarehouseHandler
	Fleet     *handler.FleetHandler
	Stock     *handler.StockHandler
	Order     *handler.OrderHandler
	Shipment  *handler.ShipmentHandler
	Analytics *handler.AnalyticsHandler
}

// New builds the gin engine with all middleware and routes
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Limit:  cfg.HTTP.RateLimitRequests,
			Window: cfg.HTTP.RateLimitWindow,
		})
		engine.Use(limiter.Middleware())
	}

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.GET("/health", deps.System.Health)
	engine.GET("/ready", deps.System.Ready)

	// The gateway validates its own token (browsers cannot set headers
	// on websocket requests, so it also accepts ?token=)
	engine.GET("/ws/notifications", deps.Gateway.HandleConnection)

	jwtCfg := middleware.DefaultJWTConfig(deps.JWTService)
	jwtCfg.TokenBlacklist = deps.TokenBlacklist
	jwtCfg.Logger = deps.Logger

	v1 := engine.Group("/api/v1")
	v1.Use(middleware.JWTAuthMiddleware(jwtCfg))
	{
		v1.GET("/health", deps.System.Health)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", deps.Auth.Login)
			authGroup.POST("/refresh", deps.Auth.Refresh)
			authGroup.POST("/logout", deps.Auth.Logout)
			authGroup.GET("/me", deps.Auth.Me)
			authGroup.POST("/change-password", deps.Auth.ChangePassword)
		}

		tenants := v1.Group("/tenants")
		{
			tenants.POST("/register", deps.Tenant.Register)
			tenants.GET("/current", deps.Tenant.Get)
			tenants.PUT("/current", middleware.RequireRole(identity.RoleNameAdmin), deps.Tenant.Update)
			tenants.GET("", middleware.RequireRole(identity.RoleNameAdmin), deps.Tenant.List)
			tenants.DELETE("/:id", middleware.RequireRole(identity.RoleNameAdmin), deps.Tenant.Delete)
		}

		identityGroup := v1.Group("/identity", middleware.RequireRole(identity.RoleNameAdmin))
		{
			identityGroup.POST("/users", deps.User.Create)
			identityGroup.GET("/users", deps.User.List)
			identityGroup.GET("/users/:id", deps.User.Get)
			identityGroup.PUT("/users/:id", deps.User.Update)
			identityGroup.DELETE("/users/:id", deps.User.Delete)

			identityGroup.POST("/roles", deps.Role.Create)
			identityGroup.GET("/roles", deps.Role.List)
			identityGroup.GET("/roles/:id", deps.Role.Get)
			identityGroup.PUT("/roles/:id", deps.Role.Update)
			identityGroup.DELETE("/roles/:id", deps.Role.Delete)

			identityGroup.GET("/permissions", deps.Role.ListPermissions)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/products", deps.Product.Create)
			catalog.GET("/products", deps.Product.List)
			catalog.GET("/products/:id", deps.Product.Get)
			catalog.PUT("/products/:id", deps.Product.Update)
			catalog.DELETE("/products/:id", deps.Product.Delete)
		}

		logistics := v1.Group("/logistics")
		{
			logistics.POST("/warehouses", deps.Warehouse.Create)
			logistics.GET("/warehouses", deps.Warehouse.List)
			logistics.GET("/warehouses/:id", deps.Warehouse.Get)
			logistics.PUT("/warehouses/:id", deps.Warehouse.Update)
			logistics.DELETE("/warehouses/:id", deps.Warehouse.Delete)

			logistics.POST("/vehicles", deps.Fleet.CreateVehicle)
			logistics.GET("/vehicles", deps.Fleet.ListVehicles)
			logistics.GET("/vehicles/:id", deps.Fleet.GetVehicle)
			logistics.PUT("/vehicles/:id", deps.Fleet.UpdateVehicle)
			logistics.DELETE("/vehicles/:id", deps.Fleet.DeleteVehicle)

			logistics.POST("/drivers", deps.Fleet.CreateDriver)
			logistics.GET("/drivers", deps.Fleet.ListDrivers)
			logistics.GET("/drivers/:id", deps.Fleet.GetDriver)
			logistics.PUT("/drivers/:id", deps.Fleet.UpdateDriver)
			logistics.DELETE("/drivers/:id", deps.Fleet.DeleteDriver)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.POST("/stock", deps.Stock.Upsert)
			inventory.GET("/stock/lookup", deps.Stock.Lookup)
			inventory.GET("/warehouses/:id/items", deps.Stock.ListByWarehouse)
			inventory.GET("/low-stock", deps.Stock.ListLowStock)
		}

		trade := v1.Group("/trade")
		{
			trade.POST("/orders", deps.Order.Create)
			trade.GET("/orders", deps.Order.List)
			trade.GET("/orders/:id", deps.Order.Get)
			trade.PATCH("/orders/:id/status", deps.Order.UpdateStatus)
			trade.DELETE("/orders/:id", deps.Order.Delete)

			trade.POST("/shipments", deps.Shipment.Create)
			trade.GET("/shipments", deps.Shipment.List)
			trade.GET("/shipments/:id", deps.Shipment.Get)
			trade.PATCH("/shipments/:id/status", deps.Shipment.UpdateStatus)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/dashboard", deps.Analytics.Dashboard)
			analytics.GET("/trends", deps.Analytics.Trends)
			analytics.GET("/inventory-health", deps.Analytics.Utilization)
		}
	}

	return engine
}
