package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"doorops/internal/catalog"
	"doorops/internal/photos"
)

// InsertPhoto stores a photo row. An empty ID gets a time-ordered UUID so
// rows inserted later sort after earlier ones.
func (s *Store) InsertPhoto(ctx context.Context, record photos.Record) (photos.Record, error) {
	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return photos.Record{}, fmt.Errorf("generate photo id: %w", err)
		}
		record.ID = id.String()
	}
	stamp := timestamp()
	_, err := s.execWithRetry(ctx,
		`INSERT INTO property_photos (id, property_name, property_value, photo_type, photo_path, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.PropertyName, record.PropertyValue, record.PhotoType, record.PhotoPath, stamp, stamp,
	)
	if err != nil {
		return photos.Record{}, fmt.Errorf("insert photo: %w", err)
	}
	return record, nil
}

// InsertProduct stores a product row under its category.
func (s *Store) InsertProduct(ctx context.Context, product catalog.Product) (catalog.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	stamp := timestamp()
	_, err := s.execWithRetry(ctx,
		`INSERT INTO products (id, catalog_category_id, sku, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID, product.CategoryID, product.SKU, product.Name, stamp, stamp,
	)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}
