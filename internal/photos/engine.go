package photos

import (
	"errors"
	"fmt"

	"doorops/internal/services"
)

// Resolution records how a group's target was chosen.
type Resolution string

const (
	ResolvedLocal       Resolution = "local"
	ResolvedPlaceholder Resolution = "placeholder"
	// Unresolved groups have no target; only PolicyPreferLocal produces them.
	Unresolved Resolution = "unresolved"
)

// Target is the authoritative path for one property value.
type Target struct {
	Path       string     `json:"path,omitempty"`
	Resolution Resolution `json:"resolution"`
	// SourceID is the record the path was taken from, empty for the placeholder.
	SourceID string `json:"source_id,omitempty"`
}

// Targets maps property values to their chosen target.
type Targets map[string]Target

// Change is one planned row update.
type Change struct {
	RecordID      string `json:"record_id"`
	PropertyValue string `json:"property_value"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// Group is the set of records sharing one property value, in retrieval order.
type Group struct {
	Key     string
	Records []Record
}

// GroupRecords partitions records by property value. Groups appear in the
// order their first record was seen.
func GroupRecords(records []Record) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, record := range records {
		pos, ok := index[record.PropertyValue]
		if !ok {
			pos = len(groups)
			index[record.PropertyValue] = pos
			groups = append(groups, Group{Key: record.PropertyValue})
		}
		groups[pos].Records = append(groups[pos].Records, record)
	}
	return groups
}

// ComputeTargets selects one target per property value. Under PolicyVerify
// the mapping is total and presence errors abort the computation; a failed
// probe must never be read as a missing file.
func ComputeTargets(records []Record, policy Policy, layout Layout, presence Presence) (Targets, error) {
	if policy == PolicyVerify && presence == nil {
		return nil, errors.New("verify policy requires a presence checker")
	}
	probe := newProbeCache(presence)
	targets := make(Targets)
	for _, group := range GroupRecords(records) {
		var (
			target Target
			err    error
		)
		switch policy {
		case PolicyVerify:
			target, err = verifiedTarget(group, layout, probe)
		case PolicyPreferLocal:
			target = preferLocalTarget(group, layout)
		default:
			return nil, fmt.Errorf("unsupported policy %q", policy)
		}
		if err != nil {
			return nil, err
		}
		targets[group.Key] = target
	}
	return targets, nil
}

// verifiedTarget returns the first record, in retrieval order, whose local
// path exists on disk. Ties between several existing files go to the lowest
// id because stores return rows ordered by id.
func verifiedTarget(group Group, layout Layout, probe *probeCache) (Target, error) {
	for _, record := range group.Records {
		if layout.Classify(record.PhotoPath) != KindLocal {
			continue
		}
		present, err := probe.present(record.PhotoPath)
		if err != nil {
			return Target{}, services.Wrap(services.ErrFilesystem, "photos", "probe asset", record.PhotoPath, err)
		}
		if present {
			return Target{Path: record.PhotoPath, Resolution: ResolvedLocal, SourceID: record.ID}, nil
		}
	}
	return Target{Path: layout.Placeholder, Resolution: ResolvedPlaceholder}, nil
}

func preferLocalTarget(group Group, layout Layout) Target {
	for _, record := range group.Records {
		if layout.Classify(record.PhotoPath) == KindLocal {
			return Target{Path: record.PhotoPath, Resolution: ResolvedLocal, SourceID: record.ID}
		}
	}
	return Target{Resolution: Unresolved}
}

// Plan lists the row updates needed to apply targets under policy.
func Plan(records []Record, targets Targets, policy Policy, layout Layout) []Change {
	var changes []Change
	for _, record := range records {
		target, ok := targets[record.PropertyValue]
		if !ok || target.Resolution == Unresolved {
			continue
		}
		if record.PhotoPath == target.Path {
			continue
		}
		if policy == PolicyPreferLocal && layout.Classify(record.PhotoPath) != KindExternal {
			continue
		}
		changes = append(changes, Change{
			RecordID:      record.ID,
			PropertyValue: record.PropertyValue,
			From:          record.PhotoPath,
			To:            target.Path,
		})
	}
	return changes
}

type probeCache struct {
	presence Presence
	seen     map[string]bool
}

func newProbeCache(presence Presence) *probeCache {
	return &probeCache{presence: presence, seen: make(map[string]bool)}
}

func (c *probeCache) present(path string) (bool, error) {
	if ok, cached := c.seen[path]; cached {
		return ok, nil
	}
	ok, err := c.presence.Present(path)
	if err != nil {
		return false, err
	}
	c.seen[path] = ok
	return ok, nil
}
