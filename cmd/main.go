package main

import (
	"net/http"

	"streetbite/internal/handler"
	"streetbite/internal/middleware"
	"streetbite/internal/store"
	"streetbite/pkg/config"
	"streetbite/pkg/database"
	"streetbite/pkg/jwtutil"
	"streetbite/pkg/logger"
	"streetbite/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting streetbite marketplace API...", zap.String("environment", cfg.Server.Env))

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Pick the persistence backend
	var st store.Store
	if cfg.DB.Driver == "memory" {
		st = store.NewMemory()
		log.Info("Using in-memory store, state will not survive a restart")
	} else {
		if err := database.InitDB(cfg); err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		st = store.NewGorm(database.GetDB())
		log.Info("Database connection established and migrations completed",
			zap.String("db_host", cfg.DB.Host),
			zap.String("db_name", cfg.DB.DBName))
	}

	authHandler := handler.NewAuthHandler(st)
	supplierHandler := handler.NewSupplierHandler(st)
	orderHandler := handler.NewOrderHandler(st)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		// One allowed origin per deployment
		AllowOrigins:     []string{cfg.Server.AllowedOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "API running"})
	})
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Supplier browsing stays public; catalog and order routes require
	// an authenticated identity
	suppliers := e.Group("/api/suppliers")
	suppliers.GET("", supplierHandler.ListSuppliers)
	suppliers.GET("/:supplierId", supplierHandler.GetSupplier)
	suppliers.POST("/:supplierId/items", supplierHandler.AddItem, middleware.AuthMiddleware)
	suppliers.GET("/:supplierId/orders", supplierHandler.ListOrders, middleware.AuthMiddleware)
	suppliers.PATCH("/orders/:orderId", supplierHandler.UpdateOrderStatus, middleware.AuthMiddleware)

	e.POST("/api/orders", orderHandler.PlaceOrder, middleware.AuthMiddleware)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
