package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/core/apperror"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "inventory.json")

	stock := map[string]int{"apple": 7, "banana": 5}
	require.NoError(t, store.Write(ctx, path, stock))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, stock, got)
}

func TestWrite_BareJSONObject(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "inventory.json")

	require.NoError(t, store.Write(ctx, path, map[string]int{"apple": 7}))

	// The file is the external contract: a top-level JSON object with
	// integer values, no envelope.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, map[string]any{"apple": float64(7)}, doc)
}

func TestWrite_OverwritesExistingFile(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "inventory.json")

	require.NoError(t, store.Write(ctx, path, map[string]int{"apple": 1}))
	require.NoError(t, store.Write(ctx, path, map[string]int{"banana": 2}))

	got, err := store.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"banana": 2}, got)
}

func TestRead_MissingFile(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Read(ctx, filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing file must surface fs.ErrNotExist")
	assert.True(t, apperror.IsPersistence(err))
}

func TestRead_MalformedJSON(t *testing.T) {
	ctx := context.Background()
	store := New()
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apple": }`), 0o644))

	_, err := store.Read(ctx, path)
	assert.True(t, apperror.IsPersistence(err))
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}

func TestRead_RejectsInvariantViolations(t *testing.T) {
	ctx := context.Background()
	store := New()

	tests := []struct {
		name string
		body string
	}{
		{"zero quantity", `{"apple": 0}`},
		{"negative quantity", `{"apple": -3}`},
		{"fractional quantity", `{"apple": 2.5}`},
		{"string quantity", `{"apple": "ten"}`},
		{"empty item name", `{"": 3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "inventory.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := store.Read(ctx, path)
			assert.True(t, apperror.IsPersistence(err))
		})
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.Write(ctx, filepath.Join(t.TempDir(), "no", "such", "dir.json"), map[string]int{"apple": 1})
	assert.True(t, apperror.IsPersistence(err))
}
