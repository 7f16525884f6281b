package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/api/handlers"
	"github.com/Timmydavid123/server/internal/api/middleware"
	"github.com/Timmydavid123/server/internal/config"
	"github.com/Timmydavid123/server/internal/service"
)

// Services bundles what the handlers call into
type Services struct {
	Contact        *service.ContactService
	Checkout       *service.CheckoutService
	Receipt        *service.ReceiptService
	Diagnostics    *service.DiagnosticsService
	ContactLimiter *middleware.IPRateLimiter
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc Services, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Only listed proxies may set the client IP through X-Forwarded-For.
	var proxies []string
	if len(cfg.TrustedProxies) > 0 {
		proxies = cfg.TrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES, trusting no proxy", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(loggingMiddleware(logger))
	if corsMw := corsMiddleware(cfg, logger); corsMw != nil {
		router.Use(corsMw)
	}

	router.GET("/health", handlers.HandleHealth(svc.Diagnostics))
	router.GET("/test-email",
		middleware.AdminKeyMiddleware(cfg.AdminKeyHash, logger),
		handlers.HandleTestEmail(svc.Diagnostics, logger),
	)

	contactChain := []gin.HandlerFunc{}
	if svc.ContactLimiter != nil {
		contactChain = append(contactChain, middleware.RateLimitMiddleware(svc.ContactLimiter, logger))
	}
	contactChain = append(contactChain, handlers.HandleContact(svc.Contact, logger))
	router.POST("/api/contact", contactChain...)

	router.POST("/create-checkout-session", handlers.HandleCreateCheckoutSession(svc.Checkout, logger))
	router.GET("/verify-payment", handlers.HandleVerifyPayment(svc.Checkout, logger))
	router.POST("/send-receipt", handlers.HandleSendReceipt(svc.Receipt, logger))

	if cfg.IsProduction() && cfg.StaticDir != "" {
		router.NoRoute(staticFallback(cfg.StaticDir))
	} else {
		// Root: friendly response so GET / returns 200 instead of 404
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service": "Storefront server",
				"endpoints": []string{
					"GET /health",
					"GET /test-email",
					"POST /api/contact",
					"POST /create-checkout-session",
					"GET /verify-payment",
					"POST /send-receipt",
				},
			})
		})
	}

	return router
}

// corsMiddleware allows the configured origins. With none configured it
// allows any origin outside production and is omitted in production.
func corsMiddleware(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.AdminKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	case !cfg.IsProduction():
		corsCfg.AllowAllOrigins = true
	default:
		logger.Warn("ALLOWED_ORIGINS is empty; cross-origin requests are not allowed")
		return nil
	}
	return cors.New(corsCfg)
}

// staticFallback serves the built frontend. Unknown GET paths outside the
// API get index.html so client-side routing works.
func staticFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		rel := filepath.FromSlash(filepath.Clean("/" + c.Request.URL.Path))
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		c.File(index)
	}
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
