/*
Package cmd - composition root.

Wires configuration, logging, persistence, the payment gateway client and
the HTTP layer together. The database.type switch selects between the
MySQL/GORM stack and the in-memory stack; everything above the repository
interfaces is identical in both modes.
*/
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"storefront/api"
	"storefront/api/cart"
	"storefront/api/catalog"
	"storefront/api/health"
	"storefront/api/order"
	"storefront/api/user"
	cartapp "storefront/application/cart"
	catalogapp "storefront/application/catalog"
	orderapp "storefront/application/order"
	userapp "storefront/application/user"
	"storefront/config"
	cartdomain "storefront/domain/cart"
	catalogdomain "storefront/domain/catalog"
	orderdomain "storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"
	userdomain "storefront/domain/user"
	"storefront/infrastructure/payment/iamport"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/mysql"
	"storefront/infrastructure/persistence/retry"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App assembled application
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// repositories groups the persistence ports handed to the services
type repositories struct {
	users      userdomain.Repository
	products   catalogdomain.Repository
	carts      cartdomain.Repository
	orders     orderdomain.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApp builds the application from configuration
func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type),
		zap.String("payment_policy", cfg.Payment.VerifyPolicy))

	db, repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	// Payment verification: gateway client plus the startup-fixed policy
	verifier := iamport.NewClient(
		cfg.Payment.GatewayBaseURL,
		cfg.Payment.ImpKey,
		cfg.Payment.ImpSecret,
		cfg.Payment.Timeout,
	)
	policy := payment.ParsePolicy(cfg.Payment.VerifyPolicy)

	userService := userapp.NewApplicationService(repos.users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	catalogService := catalogapp.NewApplicationService(repos.products)
	cartService := cartapp.NewApplicationService(repos.carts, repos.products)
	orderService := orderapp.NewApplicationService(
		repos.orders,
		repos.carts,
		repos.products,
		verifier,
		policy,
		repos.uowFactory,
	)

	healthController := health.NewController(cfg, sqlDBFrom(db))
	userController := user.NewController(userService)
	catalogController := catalog.NewController(catalogService)
	cartController := cart.NewController(cartService)
	orderController := order.NewController(orderService)

	router := api.NewRouter(
		cfg,
		userService,
		healthController,
		userController,
		catalogController,
		cartController,
		orderController,
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
	}, nil
}

// buildRepositories selects the persistence stack.
// db is nil in memory mode.
func buildRepositories(cfg *config.Config) (*gorm.DB, *repositories, error) {
	if cfg.Database.Type == "mysql" {
		logger.Info("Using MySQL/GORM persistence layer")

		db, err := NewMySQLConfig(cfg).Connect()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}

		// Auto migration in development environment
		if cfg.IsDevelopment() {
			if err := mysql.AutoMigrate(db); err != nil {
				return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
			}
		}

		return db, &repositories{
			users:      mysql.NewUserRepository(db),
			products:   mysql.NewProductRepository(db),
			carts:      mysql.NewCartRepository(db),
			orders:     mysql.NewOrderRepository(db),
			uowFactory: mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg)),
		}, nil
	}

	logger.Info("Using in-memory persistence layer")

	eventBus := shared.NewEventBus()

	return nil, &repositories{
		users:      memory.NewUserRepository(),
		products:   memory.NewProductRepository(),
		carts:      memory.NewCartRepository(),
		orders:     memory.NewOrderRepository(),
		uowFactory: memory.NewUnitOfWorkFactory(eventBus),
	}, nil
}

// sqlDBFrom unwraps the raw connection for the health controller
func sqlDBFrom(db *gorm.DB) *sql.DB {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}

// Run serves HTTP until the context is cancelled, then shuts down cleanly
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if sqlDB := sqlDBFrom(a.db); sqlDB != nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database connection", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}

// GetEngine exposes the gin engine for HTTP-level tests
func (a *App) GetEngine() http.Handler {
	return a.server.Handler
}
