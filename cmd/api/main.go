package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"points-ledger/config"
	httpHandler "points-ledger/internal/adapter/http/handler"
	"points-ledger/internal/adapter/http/middleware"
	memStorage "points-ledger/internal/adapter/storage/memory"
	pgStorage "points-ledger/internal/adapter/storage/postgres"
	redisStorage "points-ledger/internal/adapter/storage/redis"
	"points-ledger/internal/core/ports"
	"points-ledger/internal/metrics"
	"points-ledger/internal/service"
	"points-ledger/pkg/logger"
)

func main() {
	// Load configuration
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	policy, err := cfg.Points.Policy()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid points configuration")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Str("euro_per_point", policy.EuroPerPoint.String()).
		Msg("Starting Points Ledger")

	ctx := context.Background()

	var (
		actorRepo       ports.ActorRepository
		walletRepo      ports.WalletRepository
		entryRepo       ports.LedgerEntryRepository
		idempotencyRepo ports.IdempotencyRepository
		transactor      ports.DBTransactor
		healthCheckers  []ports.HealthChecker
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memStorage.NewStore()
		actorRepo = memStorage.NewActorRepo(store)
		walletRepo = memStorage.NewWalletRepo(store)
		entryRepo = memStorage.NewLedgerEntryRepo(store)
		idempotencyRepo = memStorage.NewIdempotencyRepo(store)
		transactor = store
		healthCheckers = append(healthCheckers, store)
		log.Warn().Msg("Using in-memory storage, the ledger is lost on restart")
	default:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		if cfg.Database.AutoMigrate {
			if err := pgStorage.Migrate(ctx, pool, log); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply database schema")
			}
		}

		actorRepo = pgStorage.NewActorRepo(pool)
		walletRepo = pgStorage.NewWalletRepo(pool)
		entryRepo = pgStorage.NewLedgerEntryRepo(pool)
		idempotencyRepo = pgStorage.NewIdempotencyRepo(pool)
		transactor = pgStorage.NewTransactor(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Redis is optional; without it eligibility is cached in-process and
	// idempotency relies on the database alone.
	var (
		eligibilityCache ports.EligibilityCache = memStorage.NewEligibilityCache()
		idempotencyCache ports.IdempotencyCache
		rateLimitStore   middleware.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		eligibilityCache = redisStorage.NewEligibilityCache(rdb)
		idempotencyCache = redisStorage.NewIdempotencyCache(rdb)
		if cfg.RateLimit.Enabled {
			rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		}
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	ledgerMetrics := metrics.New()

	// Initialize business services
	ledgerStore := service.NewLedgerStore(actorRepo, walletRepo, entryRepo, log)
	eligibilitySvc := service.NewEligibilityService(
		actorRepo,
		entryRepo,
		walletRepo,
		eligibilityCache,
		cfg.Eligibility.CacheTTL,
		ledgerMetrics,
		log,
	)
	pointsSvc := service.NewPointsService(
		actorRepo,
		walletRepo,
		entryRepo,
		ledgerStore,
		eligibilitySvc,
		idempotencyRepo,
		idempotencyCache,
		transactor,
		policy,
		cfg.Idempotency.TTL,
		ledgerMetrics,
		log,
	)
	checkoutSvc := service.NewCheckoutService(
		actorRepo,
		walletRepo,
		entryRepo,
		ledgerStore,
		eligibilitySvc,
		idempotencyRepo,
		idempotencyCache,
		transactor,
		policy,
		cfg.Idempotency.TTL,
		ledgerMetrics,
		log,
	)
	querySvc := service.NewWalletQueryService(actorRepo, walletRepo, entryRepo, log)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PointsSvc:      pointsSvc,
		CheckoutSvc:    checkoutSvc,
		EligibilitySvc: eligibilitySvc,
		QuerySvc:       querySvc,
		RateLimitStore: rateLimitStore,
		RateLimitRule: middleware.RateLimitRule{
			Limit:  cfg.RateLimit.Limit,
			Window: cfg.RateLimit.Window,
		},
		HealthCheckers: healthCheckers,
		Metrics:        ledgerMetrics,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
