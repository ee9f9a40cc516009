package photos_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doorops/internal/photos"
)

var errInjected = errors.New("injected failure")

// memStore keeps rows in insertion order, which the tests treat as id order.
type memStore struct {
	records   []photos.Record
	failAfter int
	writes    int
}

func newMemStore(records ...photos.Record) *memStore {
	return &memStore{records: append([]photos.Record(nil), records...), failAfter: -1}
}

func (m *memStore) matches(r photos.Record, f photos.Filter) bool {
	if f.PropertyName != "" && r.PropertyName != f.PropertyName {
		return false
	}
	if f.PhotoType != "" && r.PhotoType != f.PhotoType {
		return false
	}
	if len(f.PathContains) == 0 {
		return true
	}
	for _, needle := range f.PathContains {
		if strings.Contains(r.PhotoPath, needle) {
			return true
		}
	}
	return false
}

func (m *memStore) FindPhotos(_ context.Context, f photos.Filter) ([]photos.Record, error) {
	var out []photos.Record
	for _, r := range m.records {
		if m.matches(r, f) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) UpdatePhotoPath(_ context.Context, id, path string) (photos.Record, error) {
	if m.failAfter >= 0 && m.writes >= m.failAfter {
		return photos.Record{}, errInjected
	}
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].PhotoPath = path
			m.writes++
			return m.records[i], nil
		}
	}
	return photos.Record{}, fmt.Errorf("record %s not found", id)
}

func (m *memStore) CountPhotos(ctx context.Context, f photos.Filter) (int, error) {
	rows, err := m.FindPhotos(ctx, f)
	return len(rows), err
}

func (m *memStore) UpdatePhotoPaths(_ context.Context, f photos.Filter, path string) (int64, error) {
	var n int64
	for i := range m.records {
		if m.matches(m.records[i], f) {
			m.records[i].PhotoPath = path
			n++
		}
	}
	return n, nil
}

func (m *memStore) path(id string) string {
	for _, r := range m.records {
		if r.ID == id {
			return r.PhotoPath
		}
	}
	return ""
}

// presenceMap answers from a fixed set of existing paths and optionally
// fails for one path.
type presenceMap struct {
	existing map[string]bool
	failOn   string
	calls    int
}

func (p *presenceMap) Present(path string) (bool, error) {
	p.calls++
	if p.failOn != "" && path == p.failOn {
		return false, errors.New("permission denied")
	}
	return p.existing[path], nil
}

const (
	testProperty = "Domeo_Модель_Цвет"
	testCover    = "cover"
)

var testLayout = photos.Layout{LocalPrefix: "/uploads/", Placeholder: "/images/placeholder.jpg"}

func cover(id, value, path string) photos.Record {
	return photos.Record{ID: id, PropertyName: testProperty, PropertyValue: value, PhotoType: testCover, PhotoPath: path}
}
