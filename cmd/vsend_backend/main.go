package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vsend/vsend_wallet_backend/internal/adapters/database/pgsql"
	"github.com/vsend/vsend_wallet_backend/internal/adapters/paystack"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/core/services"
	"github.com/vsend/vsend_wallet_backend/internal/handlers"
	"github.com/vsend/vsend_wallet_backend/internal/middleware"
	"github.com/vsend/vsend_wallet_backend/internal/platform/config"
	"github.com/vsend/vsend_wallet_backend/pkg/database"
)

// @title V-Send Wallet Backend API
// @version 1.0
// @description Phone-number wallet backend: transfers, top-ups, withdrawals and receipts.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the mobile clients)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := buildServices(cfg, dbPool)
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories, the payment gateway and the service layer.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *portssvc.ServiceContainer {
	userRepo := pgsql.NewUserRepository(dbPool)
	accountRepo := pgsql.NewAccountRepository(dbPool)
	ledgerRepo := pgsql.NewLedgerRepository(dbPool)
	pinRepo := pgsql.NewPinRepository(dbPool)
	receiptRepo := pgsql.NewReceiptRepository(dbPool)

	gateway := paystack.NewClient(cfg.PaystackSecretKey)

	pinSvc := services.NewPinService(pinRepo)
	receiptSvc := services.NewReceiptService(receiptRepo, userRepo)
	walletSvc := services.NewWalletService(accountRepo, userRepo, ledgerRepo, pinSvc, receiptSvc)
	userSvc := services.NewUserService(userRepo, accountRepo, pinSvc,
		services.AuthConfig{
			JWTSecret: cfg.JWTSecret,
			JWTExpiry: cfg.JWTExpiryDuration,
			JWTIssuer: cfg.JWTIssuer,
		},
		services.WalletDefaults{
			CurrencyCode: cfg.DefaultCurrency,
			DailyLimit:   cfg.DefaultDailyLimit,
			MonthlyLimit: cfg.DefaultMonthlyLimit,
		},
	)
	topUpSvc := services.NewTopUpService(walletSvc, receiptSvc, userRepo, accountRepo, ledgerRepo, gateway, cfg.DefaultCurrency)

	return &portssvc.ServiceContainer{
		User:    userSvc,
		Wallet:  walletSvc,
		Pin:     pinSvc,
		TopUp:   topUpSvc,
		Receipt: receiptSvc,
	}
}

// runMigrations applies all pending "up" migrations from the migrations directory.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
