package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stocktrack/internal/domain/inventory"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	inv     *inventory.Inventory
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(inv *inventory.Inventory) *HealthHandler {
	return &HealthHandler{
		inv:     inv,
		started: time.Now(),
	}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Info handles GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":        "stocktrack",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"items":          h.inv.Len(),
	})
}
