package photos

import (
	"context"
	"strings"
)

// Record is one row of the property photo table.
type Record struct {
	ID            string `json:"id"`
	PropertyName  string `json:"property_name"`
	PropertyValue string `json:"property_value"`
	PhotoType     string `json:"photo_type"`
	PhotoPath     string `json:"photo_path"`
}

// Filter selects photo rows. Empty fields do not constrain the query.
// PathContains matches rows whose path contains any of the substrings.
type Filter struct {
	PropertyName string
	PhotoType    string
	PathContains []string
}

// Store is the query surface the photo workflows need. FindPhotos returns
// rows ordered by id so group decisions do not depend on backend ordering.
type Store interface {
	FindPhotos(ctx context.Context, filter Filter) ([]Record, error)
	UpdatePhotoPath(ctx context.Context, id, path string) (Record, error)
	CountPhotos(ctx context.Context, filter Filter) (int, error)
	UpdatePhotoPaths(ctx context.Context, filter Filter, path string) (int64, error)
}

// Presence reports whether a stored path refers to a file that exists.
type Presence interface {
	Present(path string) (bool, error)
}

// PathKind classifies a stored photo path.
type PathKind int

const (
	KindOther PathKind = iota
	KindEmpty
	KindLocal
	KindExternal
	KindPlaceholder
)

func (k PathKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindLocal:
		return "local"
	case KindExternal:
		return "external"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "other"
	}
}

// Layout describes how stored paths map onto assets.
type Layout struct {
	// LocalPrefix marks paths served from the uploads directory, e.g. "/uploads/".
	LocalPrefix string
	// Placeholder is substituted when no real asset can be confirmed.
	Placeholder string
}

// Classify reports the kind of the stored path as is. The placeholder is
// never local, even if it happens to share the local prefix.
func (l Layout) Classify(path string) PathKind {
	switch {
	case path == "":
		return KindEmpty
	case l.Placeholder != "" && path == l.Placeholder:
		return KindPlaceholder
	case l.LocalPrefix != "" && strings.HasPrefix(path, l.LocalPrefix):
		return KindLocal
	case isExternal(path):
		return KindExternal
	default:
		return KindOther
	}
}

func isExternal(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
