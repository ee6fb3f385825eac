package kvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"speakbox/internal/core/kv"
)

func TestStore_SetAndGet(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	if err := store.Set(ctx, "foo", "bar"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err := store.Get(ctx, "foo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "bar" {
		t.Errorf("Get = %q, want %q", v, "bar")
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "kv.json"))

	_, err := store.Get(context.Background(), "nonexistent")
	if !errors.Is(err, kv.ErrKeyNotFound) {
		t.Errorf("Get error = %v, want ErrKeyNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "kv.json"))
	ctx := context.Background()

	_ = store.Set(ctx, "foo", "bar")

	if err := store.Delete(ctx, "foo"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if err := store.Delete(ctx, "foo"); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Errorf("second Delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	ctx := context.Background()

	if err := New(path).Set(ctx, "foo", "bar"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err := New(path).Get(ctx, "foo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "bar" {
		t.Errorf("Get = %q, want %q", v, "bar")
	}
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := New(path).Get(context.Background(), "foo"); err == nil {
		t.Error("Get should report a parse error for a corrupt file")
	}
}
