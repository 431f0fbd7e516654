package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/qr-codes")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return store
}

func TestPutAndPublicURL(t *testing.T) {
	store := newTestStore(t)

	err := store.Put(context.Background(), "pass-1.png", []byte("image-bytes"), PutOptions{CacheControl: "3600", Upsert: true})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(store.basePath, "pass-1.png"))
	if err != nil {
		t.Fatalf("reading stored blob: %v", err)
	}
	if string(got) != "image-bytes" {
		t.Errorf("stored content = %q, want %q", got, "image-bytes")
	}

	if url := store.PublicURL("pass-1.png"); url != "http://localhost:8080/qr-codes/pass-1.png" {
		t.Errorf("PublicURL() = %q", url)
	}
}

func TestPutWithoutUpsertRejectsExistingKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "pass-1.png", []byte("first"), PutOptions{}); err != nil {
		t.Fatalf("first Put() error = %v", err)
	}

	err := store.Put(ctx, "pass-1.png", []byte("second"), PutOptions{})
	if !errors.Is(err, ErrBlobExists) {
		t.Fatalf("second Put() error = %v, want ErrBlobExists", err)
	}

	got, _ := os.ReadFile(filepath.Join(store.basePath, "pass-1.png"))
	if string(got) != "first" {
		t.Errorf("blob overwritten without upsert: %q", got)
	}
}

func TestPutUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "pass-1.png", []byte("first"), PutOptions{Upsert: true}); err != nil {
		t.Fatalf("first Put() error = %v", err)
	}
	if err := store.Put(ctx, "pass-1.png", []byte("second"), PutOptions{Upsert: true}); err != nil {
		t.Fatalf("upsert Put() error = %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(store.basePath, "pass-1.png"))
	if string(got) != "second" {
		t.Errorf("stored content = %q, want %q", got, "second")
	}
}

func TestPutFlattensTraversalKeys(t *testing.T) {
	store := newTestStore(t)

	err := store.Put(context.Background(), "../../escape.png", []byte("x"), PutOptions{Upsert: true})
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.basePath, "escape.png")); err != nil {
		t.Errorf("blob not written inside the store directory: %v", err)
	}
}
