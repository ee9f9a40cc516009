package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"doorops/internal/catalog"
)

const categoryColumns = "id, name, parent_id, level, sort_order, is_active, created_at"

func scanCategory(scanner interface{ Scan(dest ...any) error }) (catalog.Category, error) {
	var (
		c        catalog.Category
		parentID sql.NullString
		active   int
		created  string
	)
	if err := scanner.Scan(&c.ID, &c.Name, &parentID, &c.Level, &c.SortOrder, &active, &created); err != nil {
		return catalog.Category{}, err
	}
	c.ParentID = parentID.String
	c.IsActive = active != 0
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

// FindCategoryByName returns the first category with the exact name, or nil.
func (s *Store) FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM catalog_categories WHERE name = ? ORDER BY id LIMIT 1`, name)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

// ListChildCategories returns the direct children of parentID.
func (s *Store) ListChildCategories(ctx context.Context, parentID string) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM catalog_categories WHERE parent_id = ? ORDER BY sort_order, id`, parentID)
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
	stamp := created.UTC().Format(time.RFC3339Nano)
	var parent any
	if c.ParentID != "" {
		parent = c.ParentID
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO catalog_categories (id, name, parent_id, level, sort_order, is_active, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, parent, c.Level, c.SortOrder, boolToInt(c.IsActive), stamp, stamp,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// CountProducts counts the products filed under categoryID.
func (s *Store) CountProducts(ctx context.Context, categoryID string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM products WHERE catalog_category_id = ?`, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DeleteProducts removes the products filed under categoryID.
func (s *Store) DeleteProducts(ctx context.Context, categoryID string) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM products WHERE catalog_category_id = ?`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return res.RowsAffected()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

var _ catalog.Store = (*Store)(nil)
