// Package kvfile provides file-backed storage for speakbox: a JSON-file
// key-value store and the history store built on top of the kv capability.
package kvfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"speakbox/internal/core/kv"
)

// kvFile is the root JSON structure stored on disk.
type kvFile struct {
	Values map[string]string `json:"values"`
}

// Store implements kv.Store using a single JSON file for persistence.
// Concurrent processes sharing the file are serialized with a best-effort
// flock; a writer that raced another still wins last (documented limitation).
type Store struct {
	path string
	mu   sync.RWMutex
}

// New creates a new JSON file KV store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// lockPath returns the path to the lock file.
func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// withFileLock acquires a file lock, executes fn, then releases the lock.
func (s *Store) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}

// Get returns the value for a key. Returns kv.ErrKeyNotFound if absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	var found bool

	err := s.withFileLock(syscall.LOCK_SH, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		value, found = file.Values[key]
		return nil
	})
	if err != nil {
		return "", err
	}

	if !found {
		return "", kv.ErrKeyNotFound
	}

	return value, nil
}

// Set creates or replaces the value for a key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withFileLock(syscall.LOCK_EX, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		file.Values[key] = value
		return s.save(file)
	})
}

// Delete removes a key. Returns kv.ErrKeyNotFound if absent.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notFound bool

	err := s.withFileLock(syscall.LOCK_EX, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		if _, ok := file.Values[key]; !ok {
			notFound = true
			return nil
		}

		delete(file.Values, key)
		return s.save(file)
	})
	if err != nil {
		return err
	}

	if notFound {
		return kv.ErrKeyNotFound
	}

	return nil
}

// load reads the KV file from disk.
// Returns an empty kvFile if the file doesn't exist.
func (s *Store) load() (kvFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return kvFile{Values: make(map[string]string)}, nil
		}
		return kvFile{}, err
	}

	if len(data) == 0 {
		return kvFile{Values: make(map[string]string)}, nil
	}

	var file kvFile
	if err := json.Unmarshal(data, &file); err != nil {
		return kvFile{}, fmt.Errorf("parse %s: %w", s.path, err)
	}

	if file.Values == nil {
		file.Values = make(map[string]string)
	}

	return file, nil
}

// save writes the KV file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *Store) save(file kvFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
