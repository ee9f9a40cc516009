package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"doorops/internal/catalog"
	"doorops/internal/photos"
	"doorops/internal/storage/postgres"
)

const dsnEnv = "DOOROPS_TEST_POSTGRES_DSN"

func openTestStore(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}
	ctx := context.Background()
	store, err := postgres.OpenDSN(ctx, dsn, 2)
	if err != nil {
		t.Fatalf("OpenDSN: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return store
}

func TestOpenDSNRequiresDSN(t *testing.T) {
	if _, err := postgres.OpenDSN(context.Background(), "  ", 1); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestPhotoRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	property := "test-" + uuid.NewString()

	for _, r := range []photos.Record{
		{ID: property + "-2", PropertyName: property, PropertyValue: "A", PhotoType: "cover", PhotoPath: "https://old/a.jpg"},
		{ID: property + "-1", PropertyName: property, PropertyValue: "A", PhotoType: "cover", PhotoPath: "/uploads/Не использовать.jpg"},
	} {
		if err := store.InsertPhoto(ctx, r); err != nil {
			t.Fatalf("InsertPhoto: %v", err)
		}
	}

	records, err := store.FindPhotos(ctx, photos.Filter{PropertyName: property, PhotoType: "cover"})
	if err != nil {
		t.Fatalf("FindPhotos: %v", err)
	}
	if len(records) != 2 || records[0].ID != property+"-1" {
		t.Fatalf("unexpected records: %+v", records)
	}

	marked := photos.Filter{PropertyName: property, PathContains: []string{"Не использовать"}}
	if n, err := store.CountPhotos(ctx, marked); err != nil || n != 1 {
		t.Fatalf("CountPhotos = %d, %v", n, err)
	}
	if n, err := store.UpdatePhotoPaths(ctx, marked, "/images/placeholder.jpg"); err != nil || n != 1 {
		t.Fatalf("UpdatePhotoPaths = %d, %v", n, err)
	}
	updated, err := store.UpdatePhotoPath(ctx, property+"-2", "/uploads/a.jpg")
	if err != nil || updated.PhotoPath != "/uploads/a.jpg" {
		t.Fatalf("UpdatePhotoPath = %+v, %v", updated, err)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rootName := "root-" + uuid.NewString()
	root := catalog.Category{ID: uuid.NewString(), Name: rootName, IsActive: true}
	if err := store.InsertCategory(ctx, root); err != nil {
		t.Fatalf("InsertCategory: %v", err)
	}

	report, err := catalog.SeedCategories(ctx, store, nil, rootName, []string{"Ручки"}, false)
	if err != nil || len(report.Created) != 1 {
		t.Fatalf("SeedCategories = %+v, %v", report, err)
	}
	child, err := store.FindCategoryByName(ctx, "Ручки")
	if err != nil || child == nil {
		t.Fatalf("FindCategoryByName: %v %v", child, err)
	}
	if err := store.InsertProduct(ctx, catalog.Product{ID: uuid.NewString(), CategoryID: root.ID, SKU: "X"}); err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}
	deleted, err := store.DeleteProducts(ctx, root.ID)
	if err != nil || deleted != 1 {
		t.Fatalf("DeleteProducts = %d, %v", deleted, err)
	}
}
