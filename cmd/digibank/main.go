package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openvault/digibank/internal/core/ports/repositories"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/core/services"
	"github.com/openvault/digibank/internal/handlers"
	"github.com/openvault/digibank/internal/middleware"
	repocache "github.com/openvault/digibank/internal/repositories/cache"
	"github.com/openvault/digibank/internal/repositories/database/pgsql"
	"github.com/openvault/digibank/pkg/cache"
	"github.com/openvault/digibank/pkg/config"
	"github.com/openvault/digibank/pkg/database"
	"github.com/openvault/digibank/pkg/events"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Digibank Ledger API
// @version 1.0
// @description Ledger core for holdings, transfers, loans and investments.

// @host localhost:8080
// @BasePath /api/v1

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
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	repos = withHoldingCache(logger, cfg, repos)

	publisher := newPublisher(logger, cfg)
	if publisher != nil {
		defer publisher.Close()
	}

	serviceContainer := services.NewServiceContainer(repos, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

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

// withHoldingCache wraps the holding repository with a Redis read cache when
// REDIS_URL is configured. A failed Redis connection is logged and skipped;
// the service runs uncached.
func withHoldingCache(logger *slog.Logger, cfg *config.Config, repos repositories.RepositoryProvider) repositories.RepositoryProvider {
	if cfg.RedisURL == "" {
		return repos
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, holding cache disabled", slog.String("error", err.Error()))
		return repos
	}

	logger.Info("Holding read cache enabled", slog.Duration("ttl", cfg.CacheTTL))
	repos.HoldingRepo = repocache.NewCachedHoldingRepository(repos.HoldingRepo, client, cfg.CacheTTL)
	return repos
}

// newPublisher connects the ledger event producer when AMQP_URL is
// configured. A failed broker connection is logged and skipped; events are
// simply not published.
func newPublisher(logger *slog.Logger, cfg *config.Config) portssvc.EventPublisher {
	if cfg.AMQPURL == "" {
		return nil
	}

	producer, err := events.NewProducer(cfg.AMQPURL, cfg.EventExchange)
	if err != nil {
		logger.Warn("Message broker unavailable, event publishing disabled", slog.String("error", err.Error()))
		return nil
	}

	logger.Info("Ledger event publishing enabled", slog.String("exchange", cfg.EventExchange))
	return producer
}
