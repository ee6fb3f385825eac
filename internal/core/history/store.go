package history

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a history entry is not found.
var ErrNotFound = errors.New("history entry not found")

// Store defines persistence operations for synthesis history.
type Store interface {
	// List returns all history entries, newest first. Missing or
	// unreadable storage degrades to an empty list, never an error.
	List(ctx context.Context) ([]Entry, error)
	// Get returns a history entry by ID. Returns ErrNotFound if not found.
	Get(ctx context.Context, id string) (Entry, error)
	// Append records a completed synthesis as a new entry, evicting the
	// oldest entries beyond the configured limit. Returns the created
	// entry; on failure nothing is persisted.
	Append(ctx context.Context, audio []byte, text, model string, response map[string]any) (Entry, error)
	// Clear removes all history entries. Clearing an empty store is a
	// no-op success.
	Clear(ctx context.Context) error
}
