package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodexpress/internal/clock"
	"foodexpress/internal/config"
	"foodexpress/internal/database"
	"foodexpress/internal/handler"
	"foodexpress/internal/pricing"
	"foodexpress/internal/repository"
	"foodexpress/internal/router"
	"foodexpress/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting foodexpress API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	contactRepo := repository.NewContactRepository(pool, logger)

	// Resolve pricing rules: S3 when enabled, then local file, then defaults
	var rulesLoader pricing.Loader
	rulesPath := cfg.Pricing.RulesPath

	if cfg.Pricing.S3Enabled {
		s3Loader, err := pricing.NewS3Loader(ctx, cfg.Pricing.S3Bucket, cfg.Pricing.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 pricing loader, falling back to local file system")
			rulesLoader = pricing.NewFileLoader(logger)
		} else {
			rulesLoader = s3Loader
			rulesPath = cfg.Pricing.S3Key
		}
	} else if rulesPath != "" {
		rulesLoader = pricing.NewFileLoader(logger)
	}

	rules := pricing.Resolve(ctx, rulesLoader, rulesPath, logger)

	// Initialize services
	clk := clock.NewSystem()
	orderService := service.NewOrderService(orderRepo, rules, clk, logger)
	contactService := service.NewContactService(contactRepo, clk, logger)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)

	// Initialize router
	mux := router.New(orderHandler, contactHandler, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
