// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stocktrack/internal/domain/inventory"
	"stocktrack/internal/infrastructure/http/v1/handlers"
	"stocktrack/internal/infrastructure/http/v1/middleware"
	"stocktrack/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Inventory is the shared aggregate; its internal mutex serializes
	// concurrent requests.
	Inventory *inventory.Inventory

	// Logger for request logging
	Logger *logger.Logger

	// TokenValidator guards /api/v1 when non-nil; nil disables auth
	TokenValidator middleware.TokenValidator

	// SnapshotPath is the server-owned snapshot file location
	SnapshotPath string

	// LowStockThreshold is the default threshold for the low-stock endpoint
	LowStockThreshold int
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Inventory)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	if cfg.TokenValidator != nil {
		api.Use(middleware.Auth(cfg.TokenValidator))
	}

	baseHandler := handlers.NewBaseHandler()
	inventoryHandler := handlers.NewInventoryHandler(
		baseHandler,
		cfg.Inventory,
		cfg.SnapshotPath,
		cfg.LowStockThreshold,
	)
	inventoryHandler.RegisterRoutes(api.Group("/inventory"))

	return router
}
