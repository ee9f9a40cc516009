package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"doorops/internal/photos"
)

const photoColumns = "id, property_name, property_value, photo_type, photo_path"

// ErrNotFound reports an update aimed at a row that does not exist.
var ErrNotFound = errors.New("record not found")

func scanPhoto(scanner interface{ Scan(dest ...any) error }) (photos.Record, error) {
	var r photos.Record
	err := scanner.Scan(&r.ID, &r.PropertyName, &r.PropertyValue, &r.PhotoType, &r.PhotoPath)
	return r, err
}

func photoWhere(filter photos.Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.PropertyName != "" {
		clauses = append(clauses, "property_name = ?")
		args = append(args, filter.PropertyName)
	}
	if filter.PhotoType != "" {
		clauses = append(clauses, "photo_type = ?")
		args = append(args, filter.PhotoType)
	}
	if len(filter.PathContains) > 0 {
		ors := make([]string, 0, len(filter.PathContains))
		for _, needle := range filter.PathContains {
			ors = append(ors, "instr(photo_path, ?) > 0")
			args = append(args, needle)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// FindPhotos returns the rows matching filter ordered by id.
func (s *Store) FindPhotos(ctx context.Context, filter photos.Filter) ([]photos.Record, error) {
	where, args := photoWhere(filter)
	rows, err := s.db.QueryContext(ctx, `SELECT `+photoColumns+` FROM property_photos`+where+` ORDER BY id`, args...)
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
	ctx = ensureContext(ctx)
	var record photos.Record
	err := retryOnBusy(ctx, func() error {
		row := s.db.QueryRowContext(ctx,
			`UPDATE property_photos SET photo_path = ?, updated_at = ? WHERE id = ? RETURNING `+photoColumns,
			path, timestamp(), id,
		)
		var scanErr error
		record, scanErr = scanPhoto(row)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return photos.Record{}, fmt.Errorf("update photo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return photos.Record{}, fmt.Errorf("update photo %s: %w", id, err)
	}
	return record, nil
}

// CountPhotos counts the rows matching filter.
func (s *Store) CountPhotos(ctx context.Context, filter photos.Filter) (int, error) {
	where, args := photoWhere(filter)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM property_photos`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// UpdatePhotoPaths sets the path of every row matching filter in one
// statement. An empty filter is refused.
func (s *Store) UpdatePhotoPaths(ctx context.Context, filter photos.Filter, path string) (int64, error) {
	where, args := photoWhere(filter)
	if where == "" {
		return 0, errors.New("update photos: refusing to update without a filter")
	}
	args = append([]any{path, timestamp()}, args...)
	res, err := s.execWithRetry(ctx, `UPDATE property_photos SET photo_path = ?, updated_at = ?`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("update photos: %w", err)
	}
	return res.RowsAffected()
}

var _ photos.Store = (*Store)(nil)
