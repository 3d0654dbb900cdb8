// Package jsonfile persists the stock mapping as a bare JSON object on disk.
// The file format is the external contract: top-level object, item names as
// keys, integer quantities as values. No envelope, version field, or metadata.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/domain/inventory"
)

var tracer = otel.Tracer("stocktrack/jsonfile")

// Compile-time check that Store implements inventory.SnapshotStore.
var _ inventory.SnapshotStore = (*Store)(nil)

// Store reads and writes inventory snapshots on the local filesystem.
type Store struct{}

// New creates a new snapshot store.
func New() *Store {
	return &Store{}
}

// Read parses the snapshot file at path into a stock mapping.
// A missing file is reported with a persistence error matching fs.ErrNotExist
// so callers can apply their missing-file recovery policy.
func (s *Store) Read(ctx context.Context, path string) (map[string]int, error) {
	_, span := tracer.Start(ctx, "snapshot.read",
		trace.WithAttributes(
			attribute.String("snapshot.path", path),
		))
	defer span.End()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.NewPersistence("snapshot file not found").
				WithCause(err).
				WithDetail("path", path)
		}
		return nil, apperror.NewPersistence("could not read snapshot file").
			WithCause(err).
			WithDetail("path", path)
	}

	var stock map[string]int
	if err := json.Unmarshal(raw, &stock); err != nil {
		return nil, apperror.NewPersistence("invalid JSON in snapshot file").
			WithCause(err).
			WithDetail("path", path)
	}

	// Quantities must be strictly positive while an item exists; a snapshot
	// violating that is treated the same as malformed JSON.
	for item, qty := range stock {
		if item == "" || qty <= 0 {
			return nil, apperror.NewPersistence("snapshot violates inventory invariant").
				WithDetail("path", path).
				WithDetail("item", item).
				WithDetail("qty", qty)
		}
	}

	span.SetAttributes(attribute.Int("snapshot.items", len(stock)))
	return stock, nil
}

// Write serializes the stock mapping to path as pretty-printed JSON,
// overwriting any existing file.
func (s *Store) Write(ctx context.Context, path string, stock map[string]int) error {
	_, span := tracer.Start(ctx, "snapshot.write",
		trace.WithAttributes(
			attribute.String("snapshot.path", path),
			attribute.Int("snapshot.items", len(stock)),
		))
	defer span.End()

	raw, err := json.MarshalIndent(stock, "", "  ")
	if err != nil {
		return apperror.NewInternal(err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return apperror.NewPersistence("could not write snapshot file").
			WithCause(err).
			WithDetail("path", path)
	}
	return nil
}
