package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-ledger-service/config"
	"wallet-ledger-service/internal/adapter/gateway"
	httpHandler "wallet-ledger-service/internal/adapter/http/handler"
	pgStorage "wallet-ledger-service/internal/adapter/storage/postgres"
	redisStorage "wallet-ledger-service/internal/adapter/storage/redis"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/internal/service"
	"wallet-ledger-service/pkg/logger"
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

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Ledger Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize repositories and stores
	walletRepo := pgStorage.NewWalletRepo(pool)
	journalRepo := pgStorage.NewJournalRepo(pool)
	dedupStore := redisStorage.NewDedupStore(rdb)

	// Routing table is validated at startup; a malformed wallet id must
	// never surface as a mid-payment lookup error.
	routing, err := cfg.RoutingTable()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build routing table")
	}

	// External payment rail
	rail := gateway.NewBaniClient(cfg.Gateway, log)

	// Core services
	txGen := service.NewTxIDSource()
	engine := service.NewPaymentEngine(walletRepo, journalRepo, routing, txGen, cfg.Engine, log)
	reportingSvc := service.NewReportingService(walletRepo, journalRepo, routing, log)
	provisioningSvc := service.NewProvisioningService(walletRepo, rail, txGen, log)
	transferSvc := service.NewTransferService(engine, rail, log)
	kycSvc := service.NewKYCService(rail, log)

	// Health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Engine:          engine,
		ReportingSvc:    reportingSvc,
		ProvisioningSvc: provisioningSvc,
		TransferSvc:     transferSvc,
		KYCSvc:          kycSvc,
		DedupStore:      dedupStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		Logger:          log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
