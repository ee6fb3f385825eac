package kvfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"speakbox/internal/core/history"
	"speakbox/internal/core/kv"
)

// historyKey is the single KV key holding the serialized history array.
const historyKey = "history"

// HistoryStore implements history.Store over any kv.Store. The full entry
// sequence is serialized as one JSON array under historyKey and rewritten
// on every mutation, so a write either lands whole or not at all.
type HistoryStore struct {
	kv         kv.Store
	maxEntries int
	logger     zerolog.Logger
	mu         sync.RWMutex
}

// NewHistoryStore creates a history store backed by the given KV store.
// maxEntries bounds stored entries; values < 1 fall back to the default.
func NewHistoryStore(store kv.Store, maxEntries int, logger zerolog.Logger) *HistoryStore {
	if maxEntries < 1 {
		maxEntries = history.DefaultLimit
	}
	return &HistoryStore{kv: store, maxEntries: maxEntries, logger: logger}
}

// List returns all history entries, newest first. Missing, unreadable, or
// malformed storage degrades to an empty list; parse failures are logged.
func (s *HistoryStore) List(ctx context.Context) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(ctx), nil
}

// Get returns a history entry by ID. Returns history.ErrNotFound if not found.
func (s *HistoryStore) Get(ctx context.Context, id string) (history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.load(ctx) {
		if entry.ID == id {
			return entry, nil
		}
	}

	return history.Entry{}, history.ErrNotFound
}

// Append records a completed synthesis, prepending a new entry and evicting
// the oldest entries beyond the bound. Returns the created entry; if the
// storage write fails nothing is persisted.
func (s *HistoryStore) Append(ctx context.Context, audio []byte, text, model string, response map[string]any) (history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := history.New(audio, text, model, response)

	entries := append([]history.Entry{entry}, s.load(ctx)...)
	if len(entries) > s.maxEntries {
		entries = entries[:s.maxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return history.Entry{}, fmt.Errorf("marshal history: %w", err)
	}

	if err := s.kv.Set(ctx, historyKey, string(data)); err != nil {
		return history.Entry{}, fmt.Errorf("write history: %w", err)
	}

	return entry, nil
}

// Clear removes all history entries. Clearing an empty store is a no-op
// success, so Clear is idempotent.
func (s *HistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.kv.Delete(ctx, historyKey)
	if err != nil && !errors.Is(err, kv.ErrKeyNotFound) {
		return fmt.Errorf("clear history: %w", err)
	}

	return nil
}

// load reads and parses the stored entry sequence. Any read or parse
// failure is treated as "no history" so callers always get a usable list.
func (s *HistoryStore) load(ctx context.Context) []history.Entry {
	value, err := s.kv.Get(ctx, historyKey)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			s.logger.Warn().Err(err).Msg("history unreadable, treating as empty")
		}
		return nil
	}

	var entries []history.Entry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		s.logger.Warn().Err(err).Msg("history corrupted, treating as empty")
		return nil
	}

	return entries
}
