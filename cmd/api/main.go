package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kart-pricing/internal/config"
	"kart-pricing/internal/coupon"
	"kart-pricing/internal/database"
	"kart-pricing/internal/handler"
	"kart-pricing/internal/repository"
	"kart-pricing/internal/router"
	"kart-pricing/internal/service"
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
	logger.Info().Msg("starting kart-pricing API server")

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
	productRepo := repository.NewProductRepository(pool, logger)
	quoteRepo := repository.NewQuoteRepository(pool, logger)

	// Initialize coupon definition loader with S3 and local fallback
	fileLoader := coupon.NewFileLoader(logger)
	var couponLoader coupon.Loader = fileLoader

	if cfg.Coupons.S3Enabled {
		s3Loader, err := coupon.NewS3Loader(ctx, cfg.Coupons.S3Bucket, cfg.Coupons.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			couponLoader = coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.Coupons.S3Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for coupon definition files (S3 disabled)")
	}

	// Initialize coupon definition store
	storeConfig := &coupon.StoreConfig{FilePaths: cfg.Coupons.FilePaths}
	couponStore, err := coupon.NewStore(ctx, storeConfig, couponLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize coupon store: %w", err)
	}
	defer couponStore.Close()

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	quoteService := service.NewQuoteService(quoteRepo, productRepo, couponStore, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	quoteHandler := handler.NewQuoteHandler(quoteService, logger)

	// Initialize router
	mux := router.New(productHandler, quoteHandler, cfg.Auth.APIKey, logger)

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
