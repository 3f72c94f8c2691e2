package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/salesledger/internal/adapter/http"
	"github.com/iho/salesledger/internal/adapter/http/handler"
	"github.com/iho/salesledger/internal/adapter/http/middleware"
	"github.com/iho/salesledger/internal/adapter/report"
	postgresRepo "github.com/iho/salesledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/salesledger/internal/adapter/repository/redis"
	"github.com/iho/salesledger/internal/infrastructure/config"
	"github.com/iho/salesledger/internal/infrastructure/logger"
	"github.com/iho/salesledger/internal/infrastructure/metrics"
	"github.com/iho/salesledger/internal/infrastructure/postgres"
	"github.com/iho/salesledger/internal/infrastructure/redis"
	"github.com/iho/salesledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return err
	}

	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.RedisEnabled {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("redis disabled: client cache and idempotency keys are off")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	domainMetrics := metrics.New(registry)

	resolver, err := usecase.LoadTimeWindowResolver(cfg.BusinessTimezone, cfg.CallerTimezone, usecase.SystemClock{})
	if err != nil {
		return err
	}

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(log)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool, retrier)
	saleRepo := postgresRepo.NewSaleRepository(pool, retrier)
	idGen := postgresRepo.NewULIDGenerator()

	var clientRepo usecase.ClientRepository = postgresRepo.NewClientRepository(pool)
	var idempotency *middleware.IdempotencyMiddleware
	if redisClient != nil {
		cache := redisRepo.NewCache(redisClient)
		clientRepo = redisRepo.NewCachedClientRepository(clientRepo, cache, cfg.ClientCacheTTL, domainMetrics, log)
		idempotency = middleware.NewIdempotencyMiddleware(redisRepo.NewIdempotencyStore(redisClient), cfg.IdempotencyTTL, log)
	}

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo,
		usecase.WithLedgerLogger(log),
		usecase.WithLedgerRecorder(domainMetrics),
	)
	saleUC := usecase.NewSaleUseCase(saleRepo, clientRepo, idGen, usecase.SystemClock{}, domainMetrics)
	clientUC := usecase.NewClientUseCase(clientRepo, idGen)
	reportUC := usecase.NewReportUseCase(usecase.ReportConfig{
		Resolver:   resolver,
		Ledger:     ledgerUC,
		SaleRepo:   saleRepo,
		ClientRepo: clientRepo,
		Renderer: report.NewPDFRenderer(report.Config{
			Location: resolver.Location(),
			ShopName: cfg.ShopName,
			Contact:  cfg.ShopContact,
		}),
		Recorder: domainMetrics,
		Logger:   &log,
	})

	rateLimiter := newRateLimiter(cfg)
	if rateLimiter != nil {
		go rateLimiter.RunCleanup(ctx, 10*time.Minute)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ClientHandler: handler.NewClientHandler(clientUC),
		SaleHandler:   handler.NewSaleHandler(saleUC, resolver),
		LedgerHandler: handler.NewLedgerHandler(reportUC, ledgerUC, resolver),
		ReportHandler: handler.NewReportHandler(reportUC, resolver),
		HealthHandler: handler.NewHealthHandler(pool, redisClient),
		Idempotency:   idempotency,
		RateLimiter:   rateLimiter,
		HTTPMetrics:   middleware.NewHTTPMetrics(registry),
		Gatherer:      registry,
		Logger:        &log,
	})

	server := newHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func newHTTPServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}
