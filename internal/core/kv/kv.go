// Package kv defines the key-value persistence capability used by the
// history subsystem. Implementations only need to store string values
// under string keys, so the store logic can run against a file on disk
// or an in-memory substitute in tests.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store defines persistence operations over textual keys and values.
type Store interface {
	// Get returns the value for a key. Returns ErrKeyNotFound if absent.
	Get(ctx context.Context, key string) (string, error)
	// Set creates or replaces the value for a key.
	Set(ctx context.Context, key, value string) error
	// Delete removes a key. Returns ErrKeyNotFound if absent.
	Delete(ctx context.Context, key string) error
}
