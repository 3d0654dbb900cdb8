// Package inventory provides the stock-keeping aggregate: a mapping from
// item name to on-hand quantity with an append-only operation journal and
// JSON snapshot persistence.
package inventory

import (
	"context"
	"time"
)

// DefaultSnapshotPath is used when no path is supplied to Load/Save.
const DefaultSnapshotPath = "inventory.json"

// DefaultLowStockThreshold is the threshold used by LowStockDefault.
const DefaultLowStockThreshold = 5

// Op identifies the kind of journaled operation.
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpDeplete Op = "deplete" // removal drove the quantity to zero or below
	OpLoad    Op = "load"
)

// JournalEntry records a single mutation of the stock mapping.
type JournalEntry struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Op      Op        `json:"op"`
	Item    string    `json:"item,omitempty"`
	Qty     int       `json:"qty,omitempty"`
	Message string    `json:"message"`
}

// SnapshotStore reads and writes the persisted stock mapping.
// The canonical implementation is infrastructure/storage/jsonfile.
type SnapshotStore interface {
	// Read parses the snapshot at path into a stock mapping.
	// A missing file is reported with an error matching fs.ErrNotExist.
	Read(ctx context.Context, path string) (map[string]int, error)

	// Write serializes the stock mapping to path, overwriting any existing file.
	Write(ctx context.Context, path string, stock map[string]int) error
}
