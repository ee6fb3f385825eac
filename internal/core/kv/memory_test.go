package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_SetAndGet(t *testing.T) {
	store := NewMemory()
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

func TestMemory_GetNotFound(t *testing.T) {
	store := NewMemory()

	_, err := store.Get(context.Background(), "nonexistent")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_ = store.Set(ctx, "foo", "bar")

	if err := store.Delete(ctx, "foo"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "foo"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrKeyNotFound", err)
	}

	if err := store.Delete(ctx, "foo"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("second Delete error = %v, want ErrKeyNotFound", err)
	}
}
