package testsupport

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doorops/internal/catalog"
	"doorops/internal/config"
	"doorops/internal/photos"
	"doorops/internal/storage"
)

// MustOpenStore opens a storage.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *storage.Store {
	t.Helper()

	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertPhoto stores a photo row for tests.
func InsertPhoto(t testing.TB, store *storage.Store, record photos.Record) photos.Record {
	t.Helper()

	inserted, err := store.InsertPhoto(context.Background(), record)
	if err != nil {
		t.Fatalf("store.InsertPhoto: %v", err)
	}
	return inserted
}

// InsertCategory stores a category row for tests.
func InsertCategory(t testing.TB, store *storage.Store, category catalog.Category) catalog.Category {
	t.Helper()

	if err := store.InsertCategory(context.Background(), category); err != nil {
		t.Fatalf("store.InsertCategory: %v", err)
	}
	return category
}

// InsertProduct stores a product row for tests.
func InsertProduct(t testing.TB, store *storage.Store, product catalog.Product) catalog.Product {
	t.Helper()

	inserted, err := store.InsertProduct(context.Background(), product)
	if err != nil {
		t.Fatalf("store.InsertProduct: %v", err)
	}
	return inserted
}

// WriteAsset creates the file that a prefixed photo path points at.
func WriteAsset(t testing.TB, cfg *config.Config, photoPath string) string {
	t.Helper()

	rel := strings.TrimPrefix(photoPath, cfg.Photos.LocalPrefix)
	full := filepath.Join(cfg.Paths.AssetRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", full, err)
	}
	if err := os.WriteFile(full, bytes.Repeat([]byte{0x42}, 128), 0o644); err != nil {
		t.Fatalf("write %s: %v", full, err)
	}
	return full
}
