package inventory

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"stocktrack/internal/core/apperror"
)

// appendJournal records a mutation. Caller must hold inv.mu.
func (inv *Inventory) appendJournal(op Op, item string, qty int, message string) {
	inv.journal = append(inv.journal, JournalEntry{
		ID:      uuid.New().String(),
		At:      time.Now().UTC(),
		Op:      op,
		Item:    item,
		Qty:     qty,
		Message: message,
	})
}

// Journal returns a copy of the operation journal in append order.
func (inv *Inventory) Journal() []JournalEntry {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	entries := make([]JournalEntry, len(inv.journal))
	copy(entries, inv.journal)
	return entries
}

// ExportJournal writes the journal to path as zstd-compressed JSON lines.
// Best-effort utility: the journal of record stays in memory only.
func (inv *Inventory) ExportJournal(path string) error {
	entries := inv.Journal()

	f, err := os.Create(path)
	if err != nil {
		return apperror.NewPersistence("could not create journal export").
			WithCause(err).
			WithDetail("path", path)
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return apperror.NewInternal(err)
	}

	enc := json.NewEncoder(zw)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			zw.Close()
			f.Close()
			return apperror.NewPersistence("could not encode journal entry").
				WithCause(err).
				WithDetail("entry_id", entry.ID)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return apperror.NewPersistence("could not flush journal export").
			WithCause(err).
			WithDetail("path", path)
	}

	if err := f.Close(); err != nil {
		return apperror.NewPersistence("could not close journal export").
			WithCause(err).
			WithDetail("path", path)
	}
	return nil
}
