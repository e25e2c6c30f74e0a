package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/veloxline/reception_backend/internal/core/services"
	"github.com/veloxline/reception_backend/internal/handlers"
	"github.com/veloxline/reception_backend/internal/middleware"
	"github.com/veloxline/reception_backend/internal/platform/config"
	"github.com/veloxline/reception_backend/internal/providers/llmtext"
	"github.com/veloxline/reception_backend/internal/providers/telephony"
	"github.com/veloxline/reception_backend/internal/repositories/database/pgsql"
	"github.com/veloxline/reception_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// registrationRateLimit bounds how often one client IP may hit the public
// registration route; every accepted request can trigger paid provider calls.
const registrationRateLimit = "10-M"

// @title Reception Backend API
// @version 1.0
// @description AI receptionist middleware: account provisioning, phone numbers and generative-text replies.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the account token issued at registration.
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
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Shared external clients: one instance each, many concurrent callers.
	telephonyClient := telephony.NewClient(telephony.Config{
		AccountSID:      cfg.TelephonyAccountSID,
		AuthToken:       cfg.TelephonyAuthToken,
		BaseURL:         cfg.TelephonyBaseURL,
		Timeout:         cfg.TelephonyTimeout,
		CallbackBaseURL: cfg.VoiceCallbackBaseURL,
	})

	textRegistry := llmtext.NewRegistry(llmtext.NewBackend(cfg.OpenAIAPIKey, "", cfg.TextTimeout))
	if cfg.AltTextAPIKey != "" {
		textRegistry.Register(cfg.AltModelPrefix, llmtext.NewBackend(cfg.AltTextAPIKey, cfg.AltTextBaseURL, cfg.TextTimeout))
	}

	accountRepo := pgsql.NewAccountRepository(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, accountRepo, telephonyClient, textRegistry)

	registrationLimiter, err := newRegistrationLimiter()
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, registrationLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRegistrationLimiter() (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(registrationRateLimit)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
