package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"stocktrack/internal/core/apperror"
	"stocktrack/pkg/logger"
)

// Inventory owns the stock mapping for the life of the process.
//
// Quantities are strictly positive while an item exists; a removal that
// drives the quantity to zero or below deletes the entry. All operations
// are serialized through a single mutex so the aggregate can be shared
// with the HTTP layer.
type Inventory struct {
	mu      sync.Mutex
	stock   map[string]int
	journal []JournalEntry
	store   SnapshotStore
}

// New creates an empty Inventory backed by the given snapshot store.
func New(store SnapshotStore) *Inventory {
	return &Inventory{
		stock: make(map[string]int),
		store: store,
	}
}

// Add increments the stored quantity for item by qty, creating the entry
// if absent. Item must be non-empty and qty strictly positive.
func (inv *Inventory) Add(ctx context.Context, item string, qty int) error {
	if item == "" {
		err := apperror.NewValidation("item must be a non-empty string")
		logger.Warn(ctx, "add rejected", "error", err.Message)
		return err
	}
	if qty <= 0 {
		err := apperror.NewValidation("quantity must be a positive integer").
			WithDetail("item", item).
			WithDetail("qty", qty)
		logger.Warn(ctx, "add rejected", "item", item, "qty", qty, "error", err.Message)
		return err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.stock[item] += qty
	inv.appendJournal(OpAdd, item, qty, fmt.Sprintf("Added %d of %s", qty, item))

	logger.Info(ctx, "stock added", "item", item, "qty", qty, "on_hand", inv.stock[item])
	return nil
}

// Remove subtracts qty from the stored quantity of item. A result of zero
// or below deletes the entry entirely; over-subtraction is not an error.
func (inv *Inventory) Remove(ctx context.Context, item string, qty int) error {
	if item == "" {
		err := apperror.NewValidation("item must be a non-empty string")
		logger.Warn(ctx, "remove rejected", "error", err.Message)
		return err
	}
	if qty <= 0 {
		err := apperror.NewValidation("quantity must be a positive integer").
			WithDetail("item", item).
			WithDetail("qty", qty)
		logger.Warn(ctx, "remove rejected", "item", item, "qty", qty, "error", err.Message)
		return err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.stock[item]; !ok {
		err := apperror.NewNotFound("item", item)
		logger.Warn(ctx, "remove rejected", "item", item, "error", err.Message)
		return err
	}

	inv.stock[item] -= qty
	inv.appendJournal(OpRemove, item, qty, fmt.Sprintf("Removed %d of %s", qty, item))

	if inv.stock[item] <= 0 {
		delete(inv.stock, item)
		inv.appendJournal(OpDeplete, item, 0, fmt.Sprintf("%s depleted, removed from inventory", item))
		logger.Info(ctx, "stock depleted", "item", item, "qty", qty)
		return nil
	}

	logger.Info(ctx, "stock removed", "item", item, "qty", qty, "on_hand", inv.stock[item])
	return nil
}

// Quantity returns the stored quantity for item, or 0 if absent. Never fails.
func (inv *Inventory) Quantity(item string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.stock[item]
}

// LowStock returns the names of all items with quantity strictly below
// threshold, sorted lexicographically. Threshold must be non-negative.
func (inv *Inventory) LowStock(threshold int) ([]string, error) {
	if threshold < 0 {
		return []string{}, apperror.NewValidation("threshold must be a non-negative integer").
			WithDetail("threshold", threshold)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	low := make([]string, 0)
	for item, qty := range inv.stock {
		if qty < threshold {
			low = append(low, item)
		}
	}
	sort.Strings(low)
	return low, nil
}

// LowStockDefault returns LowStock at the default threshold.
func (inv *Inventory) LowStockDefault() []string {
	low, _ := inv.LowStock(DefaultLowStockThreshold)
	return low
}

// Report renders all items in lexicographic order as fixed-width lines,
// framed by separator rules. Pure read.
func (inv *Inventory) Report() string {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	rule := strings.Repeat("=", 40)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("Items Report\n")
	b.WriteString(rule + "\n")

	if len(inv.stock) == 0 {
		b.WriteString("Inventory is empty\n")
	} else {
		items := make([]string, 0, len(inv.stock))
		for item := range inv.stock {
			items = append(items, item)
		}
		sort.Strings(items)
		for _, item := range items {
			b.WriteString(fmt.Sprintf("%-20s -> %5d\n", item, inv.stock[item]))
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}

// Load replaces the entire stock mapping with the snapshot at path.
// A missing file resets the mapping to empty and still reports failure,
// leaving the aggregate in a well-defined state. Any other read failure
// leaves the mapping untouched.
func (inv *Inventory) Load(ctx context.Context, path string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	stock, err := inv.store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			inv.stock = make(map[string]int)
			inv.appendJournal(OpLoad, "", 0, fmt.Sprintf("Snapshot %s not found, starting with empty inventory", path))
			logger.Warn(ctx, "snapshot not found, starting with empty inventory", "path", path)
			return err
		}
		logger.Error(ctx, "snapshot load failed", "path", path, "error", err)
		return err
	}

	inv.stock = stock
	inv.appendJournal(OpLoad, "", 0, fmt.Sprintf("Loaded %d items from %s", len(stock), path))
	logger.Info(ctx, "snapshot loaded", "path", path, "items", len(stock))
	return nil
}

// LoadDefault loads from DefaultSnapshotPath.
func (inv *Inventory) LoadDefault(ctx context.Context) error {
	return inv.Load(ctx, DefaultSnapshotPath)
}

// Save serializes the current stock mapping to path, overwriting any
// existing file.
func (inv *Inventory) Save(ctx context.Context, path string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if err := inv.store.Write(ctx, path, inv.stock); err != nil {
		logger.Error(ctx, "snapshot save failed", "path", path, "error", err)
		return err
	}

	logger.Info(ctx, "snapshot saved", "path", path, "items", len(inv.stock))
	return nil
}

// SaveDefault saves to DefaultSnapshotPath.
func (inv *Inventory) SaveDefault(ctx context.Context) error {
	return inv.Save(ctx, DefaultSnapshotPath)
}

// Items returns a copy of the stock mapping.
func (inv *Inventory) Items() map[string]int {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	items := make(map[string]int, len(inv.stock))
	for item, qty := range inv.stock {
		items[item] = qty
	}
	return items
}

// Len returns the number of distinct items on hand.
func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.stock)
}
