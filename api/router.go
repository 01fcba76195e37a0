package api

import (
	"storefront/api/cart"
	"storefront/api/catalog"
	"storefront/api/health"
	"storefront/api/middleware"
	"storefront/api/order"
	"storefront/api/user"
	userapp "storefront/application/user"
	"storefront/config"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	userService       *userapp.ApplicationService
	healthController  *health.Controller
	userController    *user.Controller
	catalogController *catalog.Controller
	cartController    *cart.Controller
	orderController   *order.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	userService *userapp.ApplicationService,
	healthController *health.Controller,
	userController *user.Controller,
	catalogController *catalog.Controller,
	cartController *cart.Controller,
	orderController *order.Controller,
) *Router {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware (order is important)
	engine.Use(middleware.RequestIDMiddleware())                      // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())                       // 2. Recovery middleware
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))                  // 4. CORS
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 5. Rate limiting

	return &Router{
		engine:            engine,
		config:            cfg,
		userService:       userService,
		healthController:  healthController,
		userController:    userController,
		catalogController: catalogController,
		cartController:    cartController,
		orderController:   orderController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")

	// Public routes: health, register/login, catalog reads
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.userController.RegisterPublicRoutes(apiGroup)
		r.catalogController.RegisterPublicRoutes(apiGroup)
	}

	// Authenticated routes: cart, checkout, own orders, profile
	authGroup := apiGroup.Group("")
	authGroup.Use(middleware.AuthMiddleware(r.userService))
	{
		r.userController.RegisterRoutes(authGroup)
		r.cartController.RegisterRoutes(authGroup)
		r.orderController.RegisterRoutes(authGroup)
	}

	// Operator routes: catalog writes, order administration
	adminGroup := apiGroup.Group("")
	adminGroup.Use(middleware.AuthMiddleware(r.userService), middleware.AdminOnly())
	{
		r.catalogController.RegisterAdminRoutes(adminGroup)
		r.orderController.RegisterAdminRoutes(adminGroup)
	}

	// Set root path route
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
