package photos

import (
	"context"
	"sort"

	"doorops/internal/services"
)

// Stats describes the current shape of one photo partition.
type Stats struct {
	PropertyName string `json:"property_name"`
	PhotoType    string `json:"photo_type"`
	Records      int    `json:"records"`
	Groups       int    `json:"groups"`
	// InconsistentGroups have members that disagree on the path.
	InconsistentGroups int              `json:"inconsistent_groups"`
	ByKind             map[string]int   `json:"by_kind"`
	Largest            []GroupSizeEntry `json:"largest,omitempty"`
}

// GroupSizeEntry names a property value and its row count.
type GroupSizeEntry struct {
	PropertyValue string `json:"property_value"`
	Records       int    `json:"records"`
	Paths         int    `json:"paths"`
}

// Summarize reports record counts by path kind and how many groups are not
// yet path-consistent. top bounds the number of largest groups returned.
func (s *Service) Summarize(ctx context.Context, propertyName, photoType string, top int) (Stats, error) {
	stats := Stats{PropertyName: propertyName, PhotoType: photoType, ByKind: make(map[string]int)}
	records, err := s.store.FindPhotos(ctx, Filter{PropertyName: propertyName, PhotoType: photoType})
	if err != nil {
		return stats, services.Wrap(services.ErrStore, "photos", "load records", "", err)
	}
	stats.Records = len(records)
	for _, record := range records {
		stats.ByKind[s.layout.Classify(record.PhotoPath).String()]++
	}

	groups := GroupRecords(records)
	stats.Groups = len(groups)
	entries := make([]GroupSizeEntry, 0, len(groups))
	for _, group := range groups {
		paths := make(map[string]struct{}, len(group.Records))
		for _, record := range group.Records {
			paths[record.PhotoPath] = struct{}{}
		}
		if len(paths) > 1 {
			stats.InconsistentGroups++
		}
		entries = append(entries, GroupSizeEntry{PropertyValue: group.Key, Records: len(group.Records), Paths: len(paths)})
	}
	stats.Largest = largestGroups(entries, top)
	return stats, nil
}

func largestGroups(entries []GroupSizeEntry, top int) []GroupSizeEntry {
	if top <= 0 || len(entries) == 0 {
		return nil
	}
	sorted := append([]GroupSizeEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Records > sorted[j].Records
	})
	if len(sorted) > top {
		sorted = sorted[:top]
	}
	return sorted
}
