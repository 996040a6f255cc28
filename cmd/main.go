/**
 * @description
 * This is the main entry point for the CRM backend. It is responsible for
 * initializing all components of the service, including configuration,
 * database connection, external API clients, the message broker producer,
 * repositories, the core application service, the cron scheduler, and the
 * HTTP server. It wires everything together and starts the service.
 *
 * @dependencies
 * - log/slog, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - github.com/redis/go-redis/v9: Redis client for caching and rate limiting.
 * - internal/api, internal/app, internal/config, internal/store: Internal packages.
 * - pkg/authclient, pkg/binanceclient, pkg/rabbitmq: External service clients.
 */

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Viikudev/netflix-crm/internal/api"
	"github.com/Viikudev/netflix-crm/internal/app"
	"github.com/Viikudev/netflix-crm/internal/config"
	"github.com/Viikudev/netflix-crm/internal/store"
	"github.com/Viikudev/netflix-crm/pkg/authclient"
	"github.com/Viikudev/netflix-crm/pkg/binanceclient"
	"github.com/Viikudev/netflix-crm/pkg/rabbitmq"
)

func main() {
	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load application configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	// If a platform-provided PORT is set (e.g., Railway/Render), prefer it
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = port
	}

	logger.Info("starting crm backend", "port", cfg.ServerPort, "env", cfg.AppEnv)

	// Establish database connection pool
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}

	dbConfig.MaxConns = 10
	dbConfig.MinConns = 2
	dbConfig.MaxConnLifetime = 30 * time.Minute
	dbConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts
	dbConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	// Ensure required tables exist (idempotent)
	if err := ensureSchema(context.Background(), dbpool); err != nil {
		logger.Warn("failed ensuring tables (may already exist)", "error", err)
	}

	// Set up RabbitMQ producer with bounded dial timeout; fall back to a
	// no-op publisher when the broker is unreachable at startup.
	var producer rabbitmq.Publisher
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		logger.Warn("rabbitmq url missing; expiration events disabled", "env", "RABBITMQ_URL")
		producer = &rabbitmq.EventProducerFallback{}
	} else if p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL); err != nil {
		logger.Warn("failed to connect to RabbitMQ at startup; continuing without MQ", "error", err)
		producer = &rabbitmq.EventProducerFallback{}
	} else {
		producer = p
		defer p.Close()
		logger.Info("rabbitmq producer connected")
	}

	// Optional Redis client for quote caching and rate limiting.
	var redisClient *redis.Client
	if strings.TrimSpace(cfg.RedisURL) == "" {
		logger.Warn("redis url missing; quote caching and rate limiting disabled", "env", "REDIS_URL")
	} else {
		redisOptions, parseErr := redis.ParseURL(cfg.RedisURL)
		if parseErr != nil {
			logger.Warn("redis url parse failed; quote caching and rate limiting disabled", "error", parseErr)
		} else {
			redisClient = redis.NewClient(redisOptions)
			pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelPing()
			if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
				logger.Warn("redis ping failed; quote caching and rate limiting disabled", "error", pingErr)
				redisClient.Close()
				redisClient = nil
			} else {
				defer redisClient.Close()
				logger.Info("redis connected")
			}
		}
	}

	// Set up repositories
	clientStatusRepo := store.NewPostgresClientStatusRepository(dbpool)
	serviceRepo := store.NewPostgresServiceRepository(dbpool)
	accountRepo := store.NewPostgresActiveAccountRepository(dbpool)
	actorRepo := store.NewPostgresActorRepository(dbpool)

	// Initialize the core application service with its dependencies.
	crmService := app.NewService(clientStatusRepo, serviceRepo, accountRepo, actorRepo, producer, logger)

	// Quote service: Binance P2P fetcher plus the optional Redis cache.
	var quoteCache app.QuoteCache
	if redisClient != nil {
		quoteCache = app.NewRedisQuoteCache(redisClient)
	}
	quoteService := app.NewQuoteService(
		binanceclient.NewClient(cfg.BinanceAPIURL),
		quoteCache,
		time.Duration(cfg.QuoteCacheTTLSeconds)*time.Second,
		logger,
	)

	// Start the expiration sweep on its cron schedule.
	jobs := app.NewJobs(crmService, logger)
	scheduler := app.NewScheduler(jobs, logger, cfg.ExpirationSweepSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	// Session middleware: resolve cookies against the auth service, with an
	// HS256 bearer path for service-to-service calls.
	authCfg := api.AuthConfig{
		CookieName:  cfg.SessionCookieName,
		TokenSecret: cfg.ServiceTokenSecret,
	}
	if strings.TrimSpace(cfg.AuthServiceURL) == "" {
		logger.Warn("auth service url missing; session cookies cannot be resolved", "env", "AUTH_SERVICE_URL")
	} else {
		authCfg.Sessions = authclient.NewClient(cfg.AuthServiceURL, cfg.SessionCookieName)
	}

	var limiterClient redis.UniversalClient
	if redisClient != nil {
		limiterClient = redisClient
	}
	limiter := api.NewRedisRateLimiter(limiterClient, "crm:rate_limit", cfg.QuoteRateLimitPerMinute, time.Minute)

	// Set up handlers and router
	handler := api.NewHandler(crmService, quoteService, logger, !cfg.IsProduction())
	router := api.NewRouter(handler, api.RequireSession(authCfg), limiter)

	// Start the server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("could not start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server gracefully stopped")
}

// schemaDDL is the idempotent bootstrap schema. The users table mirrors
// actors resolved by the external auth service; it is populated by the
// actor upsert on protected mutations, never left to another system.
const schemaDDL = `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            email TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS services (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            service_name TEXT NOT NULL,
            price BIGINT NOT NULL CHECK (price >= 0),
            currency TEXT NOT NULL DEFAULT 'USD',
            description TEXT,
            image_url TEXT,
            created_by UUID NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS active_accounts (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL,
            password TEXT NOT NULL,
            expiration_date TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS client_statuses (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            client_name VARCHAR(20) NOT NULL,
            phone_number TEXT NOT NULL,
            status TEXT NOT NULL,
            profile_pin INTEGER NOT NULL,
            profile_name TEXT NOT NULL,
            active_account_id UUID NOT NULL REFERENCES active_accounts(id),
            service_id UUID NOT NULL REFERENCES services(id),
            expiration_date TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `

// ensureSchema creates the CRM tables when they do not exist yet.
func ensureSchema(ctx context.Context, dbpool *pgxpool.Pool) error {
	_, err := dbpool.Exec(ctx, schemaDDL)
	return err
}
