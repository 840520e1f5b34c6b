package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/router"
	"storefront/internal/seed"
	"storefront/internal/service"
	"storefront/internal/storage"
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
	logger.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage.Backend).
		Msg("starting storefront API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the storage backend
	var store storage.Storage
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if err := storage.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		store = storage.NewPostgresStorage(pool, logger)
	case config.BackendMemory:
		logger.Warn().Msg("using in-memory storage, data will not survive restarts")
		store = storage.NewMemoryStorage(logger)
	}
	defer store.Close()

	// Seed demo data when the catalogue is empty
	if err := seed.Run(ctx, store, logger); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize services
	authService := service.NewAuthService(store, logger)
	productService := service.NewProductService(store, logger)
	cartService := service.NewCartService(store, logger)
	orderService := service.NewOrderService(store, logger)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	if cfg.Auth.DemoUserID != 0 {
		logger.Warn().
			Int64("demo_user_id", cfg.Auth.DemoUserID).
			Msg("demo identity fallback enabled, do not use in production")
	}

	// Initialize router
	mux := router.New(authHandler, productHandler, cartHandler, orderHandler, cfg.Auth.DemoUserID, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
