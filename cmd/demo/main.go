// Package main walks the inventory library surface end to end:
// adds and removes stock, rejects invalid input, saves and reloads
// a snapshot, and prints the final report.
package main

import (
	"context"
	"fmt"
	"os"

	"stocktrack/internal/domain/inventory"
	"stocktrack/internal/infrastructure/storage/jsonfile"
	"stocktrack/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	inv := inventory.New(jsonfile.New())

	// Add stock
	_ = inv.Add(ctx, "apple", 10)
	_ = inv.Add(ctx, "banana", 5)
	_ = inv.Add(ctx, "orange", 3)

	// Invalid inputs are rejected without state change
	if err := inv.Add(ctx, "banana", -2); err != nil {
		fmt.Printf("rejected: %v\n", err)
	}
	if err := inv.Add(ctx, "", 10); err != nil {
		fmt.Printf("rejected: %v\n", err)
	}

	// Remove stock
	_ = inv.Remove(ctx, "apple", 3)
	_ = inv.Remove(ctx, "orange", 1)

	fmt.Printf("\nApple stock: %d\n", inv.Quantity("apple"))

	low, _ := inv.LowStock(inventory.DefaultLowStockThreshold)
	fmt.Printf("Low items (below %d): %v\n", inventory.DefaultLowStockThreshold, low)

	// Save and reload
	if err := inv.SaveDefault(ctx); err != nil {
		fmt.Printf("save failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nReloading data...")
	if err := inv.LoadDefault(ctx); err != nil {
		fmt.Printf("load failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Print(inv.Report())

	// The journal survives the reload; export it for inspection.
	if err := inv.ExportJournal("inventory-journal.jsonl.zst"); err != nil {
		fmt.Printf("journal export failed: %v\n", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
