package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"shopfront/internal/cart"
	"shopfront/internal/config"
	"shopfront/internal/handler"
	"shopfront/internal/pricing"
	"shopfront/internal/promo"
	"shopfront/internal/remote"
	"shopfront/internal/router"
	"shopfront/internal/search"
	"shopfront/internal/storage"
	"shopfront/internal/wishlist"
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
	logger.Info().Msg("starting shopfront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize snapshot store
	store := storage.NewFileStore(cfg.Storage.Dir, logger)

	// Initialize promo loader with S3 and local fallback
	fileLoader := promo.NewFileLoader(logger)
	var promoLoader promo.Loader

	if cfg.S3.Enabled {
		s3Loader, err := promo.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			promoLoader = fileLoader
		} else {
			promoLoader = promo.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	} else {
		promoLoader = fileLoader
		logger.Info().Msg("using local file system for promo code files (S3 disabled)")
	}

	// Initialize promo validator
	validatorConfig := &promo.ValidatorConfig{
		RulesPath: cfg.Promo.RulesPath,
		FilePaths: cfg.Promo.FilePaths,
		MinLength: cfg.Promo.MinLength,
		MaxLength: cfg.Promo.MaxLength,
	}
	validator, err := promo.NewValidator(ctx, validatorConfig, promoLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize promo validator: %w", err)
	}
	defer validator.Close()

	// Initialize remote cart client
	remoteClient := remote.NewHTTPClient(
		cfg.Remote.BaseURL,
		time.Duration(cfg.Remote.TimeoutSeconds)*time.Second,
		logger,
	)

	// Initialize engines
	calc := pricing.NewCalculator(decimal.NewFromFloat(cfg.Pricing.TaxRate))
	cartEngine := cart.NewEngine(store, validator, remoteClient, calc, cfg.Pricing.Currency, logger)
	wishlistEngine := wishlist.NewEngine(store, logger)
	wishlistEngine.Dispatch(wishlist.Initialize{})
	searchHistory := search.NewHistory(store, search.DefaultLimit, logger)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartEngine, wishlistEngine, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlistEngine, cartEngine, logger)
	searchHandler := handler.NewSearchHandler(searchHistory, logger)

	// Initialize router
	mux := router.New(cartHandler, wishlistHandler, searchHandler, cfg.Auth.APIKey, logger)

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
