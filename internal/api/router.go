package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/api/handlers"
	"github.com/fashop/marketplace-api/internal/api/middleware"
	"github.com/fashop/marketplace-api/internal/config"
	"github.com/fashop/marketplace-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *service.Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		// Public storefront routes (rate limited, no auth)
		public := v1.Group("")
		public.Use(middleware.RateLimit("60-M"))
		{
			public.GET("/products", handlers.HandleListProducts(services, logger, false))
			public.GET("/products/:id", handlers.HandleGetProduct(services, logger, false))
			public.POST("/orders", handlers.HandleCreateOrder(services, logger))
			public.POST("/auth/login", handlers.HandleLogin(services, logger))
			public.POST("/webhooks/sms-response", handlers.HandleSMSReply(services, logger))
		}

		// Admin back office (JWT)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, logger))
		{
			admin.GET("/products", handlers.HandleListProducts(services, logger, true))
			admin.GET("/products/:id", handlers.HandleGetProduct(services, logger, true))
			admin.POST("/products", handlers.HandleCreateProduct(services, logger))
			admin.PUT("/products/:id", handlers.HandleUpdateProduct(services, logger))
			admin.DELETE("/products/:id", handlers.HandleDeleteProduct(services, logger))
			admin.PUT("/products/:id/stock", handlers.HandleAdjustStock(services, logger))

			admin.GET("/suppliers", handlers.HandleListSuppliers(services, logger))
			admin.GET("/suppliers/:id", handlers.HandleGetSupplier(services, logger))
			admin.POST("/suppliers", handlers.HandleCreateSupplier(services, logger))
			admin.PUT("/suppliers/:id", handlers.HandleUpdateSupplier(services, logger))
			admin.DELETE("/suppliers/:id", handlers.HandleDeactivateSupplier(services, logger))

			admin.GET("/orders", handlers.HandleListOrders(services, logger))
			admin.GET("/orders/:id", handlers.HandleGetOrder(services, logger))
			admin.PUT("/orders/:id/status", handlers.HandleUpdateOrderStatus(services, logger))
			admin.PUT("/orders/:id/payment", handlers.HandleConfirmPayment(services, logger))
			admin.PUT("/orders/:id/supplier-response", handlers.HandleSupplierResponse(services, logger))

			admin.GET("/stats/dashboard", handlers.HandleDashboardStats(services, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method
		start := time.Now()

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
