package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/domain/inventory"
	"stocktrack/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles HTTP requests for the inventory aggregate.
type InventoryHandler struct {
	*BaseHandler
	inv          *inventory.Inventory
	snapshotPath string
	threshold    int
}

// NewInventoryHandler creates a new inventory handler. snapshotPath is the
// server-owned snapshot location; clients cannot supply paths.
func NewInventoryHandler(base *BaseHandler, inv *inventory.Inventory, snapshotPath string, threshold int) *InventoryHandler {
	if snapshotPath == "" {
		snapshotPath = inventory.DefaultSnapshotPath
	}
	if threshold <= 0 {
		threshold = inventory.DefaultLowStockThreshold
	}
	return &InventoryHandler{
		BaseHandler:  base,
		inv:          inv,
		snapshotPath: snapshotPath,
		threshold:    threshold,
	}
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items := h.inv.Items()
	h.OK(c, dto.InventoryResponse{
		Items:      items,
		TotalItems: len(items),
	})
}

// GetItem handles GET /inventory/items/:name
func (h *InventoryHandler) GetItem(c *gin.Context) {
	name := c.Param("name")
	h.OK(c, dto.ItemResponse{
		Item:     name,
		Quantity: h.inv.Quantity(name),
	})
}

// Add handles POST /inventory/items/:name/add
func (h *InventoryHandler) Add(c *gin.Context) {
	var req dto.AdjustRequest
	if !h.BindJSON(c, &req) {
		return
	}

	name := c.Param("name")
	if err := h.inv.Add(c.Request.Context(), name, req.Qty); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ItemResponse{
		Item:     name,
		Quantity: h.inv.Quantity(name),
	})
}

// Remove handles POST /inventory/items/:name/remove
func (h *InventoryHandler) Remove(c *gin.Context) {
	var req dto.AdjustRequest
	if !h.BindJSON(c, &req) {
		return
	}

	name := c.Param("name")
	if err := h.inv.Remove(c.Request.Context(), name, req.Qty); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ItemResponse{
		Item:     name,
		Quantity: h.inv.Quantity(name),
	})
}

// LowStock handles GET /inventory/low?threshold=5
func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold := h.threshold
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("threshold must be an integer").WithDetail("threshold", raw))
			return
		}
		threshold = parsed
	}

	items, err := h.inv.LowStock(threshold)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LowStockResponse{
		Threshold: threshold,
		Items:     items,
	})
}

// Report handles GET /inventory/report
func (h *InventoryHandler) Report(c *gin.Context) {
	c.String(http.StatusOK, h.inv.Report())
}

// Journal handles GET /inventory/journal?limit=100
// A positive limit returns only the most recent entries.
func (h *InventoryHandler) Journal(c *gin.Context) {
	entries := h.inv.Journal()

	if limit := h.ParseIntQuery(c, "limit", 0); limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}

	response := make([]dto.JournalEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = dto.FromJournalEntry(e)
	}

	h.OK(c, dto.JournalResponse{
		Entries:    response,
		TotalCount: len(response),
	})
}

// SaveSnapshot handles POST /inventory/snapshot/save
func (h *InventoryHandler) SaveSnapshot(c *gin.Context) {
	if err := h.inv.Save(c.Request.Context(), h.snapshotPath); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "snapshot saved")
}

// LoadSnapshot handles POST /inventory/snapshot/load
func (h *InventoryHandler) LoadSnapshot(c *gin.Context) {
	if err := h.inv.Load(c.Request.Context(), h.snapshotPath); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "snapshot loaded")
}

// RegisterRoutes registers inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/items/:name", h.GetItem)
	rg.POST("/items/:name/add", h.Add)
	rg.POST("/items/:name/remove", h.Remove)
	rg.GET("/low", h.LowStock)
	rg.GET("/report", h.Report)
	rg.GET("/journal", h.Journal)
	rg.POST("/snapshot/save", h.SaveSnapshot)
	rg.POST("/snapshot/load", h.LoadSnapshot)
}
