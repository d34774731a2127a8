package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ncordova/vinoteca/internal"
	"github.com/ncordova/vinoteca/internal/handler/api"
	"github.com/ncordova/vinoteca/internal/middleware"
	"github.com/ncordova/vinoteca/internal/payment"
	"github.com/ncordova/vinoteca/internal/rating"
	"github.com/ncordova/vinoteca/internal/recommend"
	"github.com/ncordova/vinoteca/internal/repository"
	"github.com/ncordova/vinoteca/internal/router"
	"github.com/ncordova/vinoteca/internal/routes"
	"github.com/ncordova/vinoteca/internal/service"
	"github.com/ncordova/vinoteca/internal/shipping"
	"github.com/ncordova/vinoteca/internal/storage"
	"github.com/ncordova/vinoteca/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	store := repository.NewStore(pool)

	// Initialize file storage for review images
	files, err := storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.LocalURL)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize payment gateway
	logger.Info("Initializing PayPal gateway...", "live", cfg.PayPal.Live)
	gateway, err := payment.NewPayPalProvider(payment.PayPalConfig{
		ClientID:  cfg.PayPal.ClientID,
		Secret:    cfg.PayPal.Secret,
		Live:      cfg.PayPal.Live,
		ReturnURL: cfg.PayPal.ReturnURL,
		CancelURL: cfg.PayPal.CancelURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize PayPal gateway: %w", err)
	}

	// Initialize prediction service clients
	shippingEstimator, err := shipping.NewPredictorClient(cfg.Predictors.ShippingURL, cfg.Predictors.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize shipping estimator: %w", err)
	}
	ratingPredictor, err := rating.NewPredictorClient(cfg.Predictors.RatingURL, cfg.Predictors.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize rating predictor: %w", err)
	}
	recommender, err := recommend.NewClient(cfg.Predictors.RecommenderURL, cfg.Predictors.Timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize recommender: %w", err)
	}

	// Initialize business metrics
	metrics := telemetry.InitBusinessMetrics("vinoteca")

	// Initialize services
	quoteService := service.NewQuoteService(shippingEstimator, cfg.FreeShippingThreshold, metrics)
	checkoutService := service.NewCheckoutService(store, quoteService, gateway, metrics)
	productService := service.NewProductService(store, recommender, logger, cfg.LowStockThreshold)
	cartService := service.NewCartService(store, metrics)
	reviewService := service.NewReviewService(store, ratingPredictor, metrics)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	httpMetrics := middleware.NewMetrics("vinoteca")

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		// Relax CSP in development for easier debugging
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		CleanupInterval:   time.Minute,
	})
	defer rateLimiter.Stop()

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		router.CORS(cfg.CORSOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		rateLimiter.Middleware,
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
		middleware.WithUser([]byte(cfg.JWTSecret)),
	)

	routes.Register(r, routes.Deps{
		Products: api.NewProductHandler(productService),
		Cart:     api.NewCartHandler(cartService),
		Orders:   api.NewOrderHandler(checkoutService, logger),
		Shipping: api.NewShippingHandler(quoteService),
		Reviews:  api.NewReviewHandler(reviewService, files, logger),
		Health: func(w http.ResponseWriter, req *http.Request) {
			if err := pool.Ping(req.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
		Metrics:   httpMetrics,
		UploadDir: cfg.Storage.LocalPath,
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
