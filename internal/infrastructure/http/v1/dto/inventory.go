// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stocktrack/internal/domain/inventory"
)

// AdjustRequest is the body for add/remove operations.
type AdjustRequest struct {
	Qty int `json:"qty"`
}

// ItemResponse describes a single item's on-hand quantity.
type ItemResponse struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// InventoryResponse is the full stock mapping.
type InventoryResponse struct {
	Items      map[string]int `json:"items"`
	TotalItems int            `json:"totalItems"`
}

// LowStockResponse lists items below the threshold.
type LowStockResponse struct {
	Threshold int      `json:"threshold"`
	Items     []string `json:"items"`
}

// JournalEntryResponse is one journaled mutation.
type JournalEntryResponse struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Op      string    `json:"op"`
	Item    string    `json:"item,omitempty"`
	Qty     int       `json:"qty,omitempty"`
	Message string    `json:"message"`
}

// JournalResponse wraps the operation journal.
type JournalResponse struct {
	Entries    []JournalEntryResponse `json:"entries"`
	TotalCount int                    `json:"totalCount"`
}

// FromJournalEntry maps a domain journal entry to its response form.
func FromJournalEntry(e inventory.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:      e.ID,
		At:      e.At,
		Op:      string(e.Op),
		Item:    e.Item,
		Qty:     e.Qty,
		Message: e.Message,
	}
}

// SuccessResponse is a generic success envelope.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
