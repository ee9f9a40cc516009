package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"doorops/internal/catalog"
)

const categoryColumns = "id, name, COALESCE(parent_id, ''), level, sort_order, is_active, created_at"

var _ catalog.Store = (*Store)(nil)

func scanCategory(row pgx.Row) (catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Name, &c.ParentID, &c.Level, &c.SortOrder, &c.IsActive, &c.CreatedAt)
	return c, err
}

// FindCategoryByName returns the first category with the exact name, or nil.
func (s *Store) FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM catalog_categories WHERE name = $1 ORDER BY id LIMIT 1`, name)
	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

// ListChildCategories returns the direct children of parentID.
func (s *Store) ListChildCategories(ctx context.Context, parentID string) ([]catalog.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+categoryColumns+` FROM catalog_categories WHERE parent_id = $1 ORDER BY sort_order, id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []catalog.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertCategory stores a new category.
func (s *Store) InsertCategory(ctx context.Context, c catalog.Category) error {
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	var parent *string
	if c.ParentID != "" {
		parent = &c.ParentID
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO catalog_categories (id, name, parent_id, level, sort_order, is_active, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		c.ID, c.Name, parent, c.Level, c.SortOrder, c.IsActive, created,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// CountProducts counts the products filed under categoryID.
func (s *Store) CountProducts(ctx context.Context, categoryID string) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(1) FROM products WHERE catalog_category_id = $1`, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DeleteProducts removes the products filed under categoryID.
func (s *Store) DeleteProducts(ctx context.Context, categoryID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE catalog_category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertProduct stores a product row under its category.
func (s *Store) InsertProduct(ctx context.Context, p catalog.Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (id, catalog_category_id, sku, name) VALUES ($1, $2, $3, $4)`,
		p.ID, p.CategoryID, p.SKU, p.Name,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}
