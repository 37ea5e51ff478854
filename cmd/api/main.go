package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"escrow-ledger-engine/config"
	"escrow-ledger-engine/internal/adapter/gateway"
	httpHandler "escrow-ledger-engine/internal/adapter/http/handler"
	pgStorage "escrow-ledger-engine/internal/adapter/storage/postgres"
	redisStorage "escrow-ledger-engine/internal/adapter/storage/redis"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/internal/scheduler"
	"escrow-ledger-engine/internal/service"
	"escrow-ledger-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Escrow Ledger Engine")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	campaignRepo := pgStorage.NewCampaignRepo(pool)
	onboardingRepo := pgStorage.NewOnboardingRepo(pool)
	reconRepo := pgStorage.NewReconciliationRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	causationCache := redisStorage.NewCausationCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	notifier := service.NewNotifier(
		cfg.Notify.Endpoint,
		cfg.Notify.SigningSecret,
		sigSvc,
		&http.Client{Timeout: 10 * time.Second},
		log,
	)
	payoutGateway := gateway.NewPayoutProviderClient(cfg.Gateway, sigSvc, log)

	// Initialize business services
	escrowSvc := service.NewEscrowService(
		ledgerRepo,
		walletRepo,
		campaignRepo,
		onboardingRepo,
		causationCache,
		transactor,
		log,
	)
	milestoneSvc := service.NewMilestoneService(campaignRepo, escrowSvc, transactor, notifier, log)
	onboardingSvc := service.NewOnboardingService(
		onboardingRepo,
		reconRepo,
		payoutGateway,
		milestoneSvc,
		notifier,
		cfg.Scheduler.PollInterval,
		log,
	)
	statusSvc := service.NewStatusService(onboardingRepo, walletRepo, campaignRepo, reconRepo, log)

	// Reconciliation scheduler covers lost webhooks by polling the provider.
	reconciler := scheduler.NewReconciler(reconRepo, payoutGateway, onboardingSvc, notifier, cfg.Scheduler, log)
	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	go reconciler.Run(schedulerCtx)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		EscrowSvc:      escrowSvc,
		MilestoneSvc:   milestoneSvc,
		OnboardingSvc:  onboardingSvc,
		StatusSvc:      statusSvc,
		PayoutGateway:  payoutGateway,
		LedgerRepo:     ledgerRepo,
		CampaignRepo:   campaignRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
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

	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
