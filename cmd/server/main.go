package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/api"
	"github.com/Timmydavid123/server/internal/api/middleware"
	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/mailer"
	"github.com/Timmydavid123/server/internal/payments"
	"github.com/Timmydavid123/server/internal/service"
	"github.com/Timmydavid123/server/internal/templates"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting storefront server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	transport, err := mailer.NewSMTPTransport(cfg.SMTP, cfg.Mail.FromName, logger)
	if err != nil {
		logger.Fatal("Failed to create mail transport", zap.Error(err))
	}
	if cfg.AdminKeyHash == "" {
		logger.Warn("ADMIN_API_KEY_HASH is not set; /test-email is unauthenticated")
	}

	renderer, err := templates.New()
	if err != nil {
		logger.Fatal("Failed to parse email templates", zap.Error(err))
	}

	paymentClient := payments.NewClient(cfg.Stripe, logger)
	limiter := middleware.NewIPRateLimiter(cfg.Contact.RatePerMinute, cfg.Contact.Burst)

	router := api.NewRouter(cfg, api.Services{
		Contact:        service.NewContactService(transport, renderer, cfg.Mail.AdminEmail, cfg.SMTP.Timeout, logger),
		Checkout:       service.NewCheckoutService(paymentClient, cfg.Stripe.Timeout, logger),
		Receipt:        service.NewReceiptService(transport, renderer, cfg, logger),
		Diagnostics:    service.NewDiagnosticsService(transport, renderer, cfg, logger),
		ContactLimiter: limiter,
	}, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.SMTP.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go limiter.Run(bgCtx, time.Minute, 10*time.Minute, logger)

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully",
		zap.String("address", srv.Addr),
		zap.Bool("email_configured", transport.Configured()),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopBackground()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newLogger builds the production logger in production and the
// development logger otherwise, at LOG_LEVEL.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}
