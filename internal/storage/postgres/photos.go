package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"doorops/internal/photos"
)

const photoColumns = "id, property_name, property_value, photo_type, photo_path"

// ErrNotFound reports an update aimed at a row that does not exist.
var ErrNotFound = errors.New("record not found")

var _ photos.Store = (*Store)(nil)

func photoWhere(filter photos.Filter, args []any) (string, []any) {
	var clauses []string
	next := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.PropertyName != "" {
		clauses = append(clauses, "property_name = "+next(filter.PropertyName))
	}
	if filter.PhotoType != "" {
		clauses = append(clauses, "photo_type = "+next(filter.PhotoType))
	}
	if len(filter.PathContains) > 0 {
		ors := make([]string, 0, len(filter.PathContains))
		for _, needle := range filter.PathContains {
			ors = append(ors, "strpos(photo_path, "+next(needle)+") > 0")
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanPhoto(row pgx.Row) (photos.Record, error) {
	var r photos.Record
	err := row.Scan(&r.ID, &r.PropertyName, &r.PropertyValue, &r.PhotoType, &r.PhotoPath)
	return r, err
}

// FindPhotos returns the rows matching filter ordered by id.
func (s *Store) FindPhotos(ctx context.Context, filter photos.Filter) ([]photos.Record, error) {
	where, args := photoWhere(filter, nil)
	rows, err := s.pool.Query(ctx, `SELECT `+photoColumns+` FROM property_photos`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	var records []photos.Record
	for rows.Next() {
		record, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdatePhotoPath sets one row's path and returns the updated row.
func (s *Store) UpdatePhotoPath(ctx context.Context, id, path string) (photos.Record, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE property_photos SET photo_path = $1, updated_at = now() WHERE id = $2 RETURNING `+photoColumns,
		path, id,
	)
	record, err := scanPhoto(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return photos.Record{}, fmt.Errorf("update photo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return photos.Record{}, fmt.Errorf("update photo %s: %w", id, err)
	}
	return record, nil
}

// CountPhotos counts the rows matching filter.
func (s *Store) CountPhotos(ctx context.Context, filter photos.Filter) (int, error) {
	where, args := photoWhere(filter, nil)
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(1) FROM property_photos`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// UpdatePhotoPaths sets the path of every row matching filter in one
// statement. An empty filter is refused.
func (s *Store) UpdatePhotoPaths(ctx context.Context, filter photos.Filter, path string) (int64, error) {
	where, args := photoWhere(filter, []any{path})
	if where == "" {
		return 0, errors.New("update photos: refusing to update without a filter")
	}
	tag, err := s.pool.Exec(ctx, `UPDATE property_photos SET photo_path = $1, updated_at = now()`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("update photos: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertPhoto stores a photo row.
func (s *Store) InsertPhoto(ctx context.Context, record photos.Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO property_photos (id, property_name, property_value, photo_type, photo_path) VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.PropertyName, record.PropertyValue, record.PhotoType, record.PhotoPath,
	)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}
