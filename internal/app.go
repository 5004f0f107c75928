// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "cashless-wallet/internal/api"
	"cashless-wallet/internal/api/handler"
	"cashless-wallet/internal/cache"
	"cashless-wallet/internal/config"
	"cashless-wallet/internal/repository"
	"cashless-wallet/internal/repository/postgres"
	"cashless-wallet/internal/service"
	"cashless-wallet/internal/util"
	"cashless-wallet/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Cache  *cache.Cache

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	VendorRepository      repository.VendorRepository
	ItemRepository        repository.ItemRepository

	// Services
	WalletService      service.WalletService
	TransactionService service.TransactionService
	PaymentService     service.PaymentService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Connect to Redis when configured. The cache is nil-safe, so a
	// deployment without Redis just runs uncached.
	if app.Config.Redis.Addr != "" {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     app.Config.Redis.Addr,
			Password: app.Config.Redis.Password,
			DB:       app.Config.Redis.DB,
		})
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Logger.Info("Redis connection established.", "addr", app.Config.Redis.Addr)
	} else {
		app.Logger.Info("Redis not configured, caching disabled.")
	}
	app.Cache = cache.New(app.Redis)

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.WalletRepository = postgres.NewWalletRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.VendorRepository = postgres.NewVendorRepository()
	app.ItemRepository = postgres.NewItemRepository()
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	transactor := db.NewTransactor(app.DB)
	app.WalletService = service.NewWalletService(
		transactor,
		app.DB,
		app.WalletRepository,
		app.TransactionRepository,
		app.Cache,
		app.Logger,
	)
	app.TransactionService = service.NewTransactionService(
		transactor,
		app.DB,
		app.TransactionRepository,
		app.Logger,
	)
	app.PaymentService = service.NewPaymentService(
		transactor,
		app.DB,
		app.WalletRepository,
		app.TransactionRepository,
		app.VendorRepository,
		app.ItemRepository,
		app.TransactionService,
		app.Cache,
		app.Logger,
		app.Config.PublicBaseURL,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger)
	paymentHandler := handler.NewPaymentHandler(app.PaymentService, app.Logger)
	transactionHandler := handler.NewTransactionHandler(app.TransactionService, app.Logger)
	app.HTTPHandler = router.NewRouter(walletHandler, paymentHandler, transactionHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
		} else {
			app.Logger.Info("Redis connection closed.")
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
