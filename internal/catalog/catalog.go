package catalog

import (
	"context"
	"strings"
	"time"
)

// Category is one node of the storefront category tree.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	Level     int       `json:"level"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is the part of a product row the delete procedure reports on.
type Product struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
}

// Store is the persistence surface the catalog procedures need. Lookups
// return a nil category and nil error when nothing matches.
type Store interface {
	FindCategoryByName(ctx context.Context, name string) (*Category, error)
	ListChildCategories(ctx context.Context, parentID string) ([]Category, error)
	InsertCategory(ctx context.Context, category Category) error
	CountProducts(ctx context.Context, categoryID string) (int, error)
	DeleteProducts(ctx context.Context, categoryID string) (int64, error)
}

// NormalizeName trims and collapses internal whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
