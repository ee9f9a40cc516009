package photos

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"doorops/internal/logging"
	"doorops/internal/services"
)

// Service runs the photo maintenance procedures against an injected store.
type Service struct {
	store    Store
	layout   Layout
	presence Presence
	logger   *slog.Logger
}

// NewService wires a Service. presence may be nil when only PolicyPreferLocal
// and the marker sweep are used.
func NewService(store Store, layout Layout, presence Presence, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		layout:   layout,
		presence: presence,
		logger:   logging.NewComponentLogger(logger, "photos"),
	}
}

// ReconcileOptions selects the partition and policy for a run.
type ReconcileOptions struct {
	PropertyName string
	PhotoType    string
	Policy       Policy
	DryRun       bool
}

// Report summarizes a reconciliation run.
type Report struct {
	Policy            Policy        `json:"policy"`
	PropertyName      string        `json:"property_name"`
	PhotoType         string        `json:"photo_type"`
	DryRun            bool          `json:"dry_run"`
	Records           int           `json:"records"`
	Groups            int           `json:"groups"`
	LocalGroups       int           `json:"local_groups"`
	PlaceholderGroups int           `json:"placeholder_groups"`
	UnresolvedGroups  int           `json:"unresolved_groups"`
	Planned           int           `json:"planned"`
	Updated           int           `json:"updated"`
	Changes           []Change      `json:"changes,omitempty"`
	Duration          time.Duration `json:"duration"`
}

// Reconcile loads every row in the partition, chooses one target per
// property value, and writes the rows that differ. All reads finish before
// any decision is made. Writes are independent; on a store error the report
// carries the count of rows already converged and the run is safe to repeat.
func (s *Service) Reconcile(ctx context.Context, opts ReconcileOptions) (Report, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, s.logger)
	report := Report{
		Policy:       opts.Policy,
		PropertyName: opts.PropertyName,
		PhotoType:    opts.PhotoType,
		DryRun:       opts.DryRun,
	}

	records, err := s.store.FindPhotos(ctx, Filter{PropertyName: opts.PropertyName, PhotoType: opts.PhotoType})
	if err != nil {
		return report, services.Wrap(services.ErrStore, "photos", "load records", "", err)
	}
	report.Records = len(records)
	logger.Info("loaded photo records",
		logging.Int("records", len(records)),
		logging.String("policy", string(opts.Policy)),
	)

	targets, err := ComputeTargets(records, opts.Policy, s.layout, s.presence)
	if err != nil {
		return report, err
	}
	report.Groups = len(targets)
	for _, target := range targets {
		switch target.Resolution {
		case ResolvedLocal:
			report.LocalGroups++
		case ResolvedPlaceholder:
			report.PlaceholderGroups++
		case Unresolved:
			report.UnresolvedGroups++
		}
	}

	changes := Plan(records, targets, opts.Policy, s.layout)
	report.Planned = len(changes)
	report.Changes = changes

	if !opts.DryRun {
		report.Updated, err = s.apply(ctx, logger, changes)
		if err != nil {
			report.Duration = time.Since(started)
			return report, err
		}
	}
	report.Duration = time.Since(started)

	logger.Info("reconcile finished",
		logging.Int("groups", report.Groups),
		logging.Int("local_groups", report.LocalGroups),
		logging.Int("placeholder_groups", report.PlaceholderGroups),
		logging.Int("unresolved_groups", report.UnresolvedGroups),
		logging.Int("planned", report.Planned),
		logging.Int("updated", report.Updated),
		logging.Bool("dry_run", opts.DryRun),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

// Apply writes each change and stops at the first failure, returning the
// number of rows written before it.
func Apply(ctx context.Context, store Store, changes []Change) (int, error) {
	updated := 0
	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if _, err := store.UpdatePhotoPath(ctx, change.RecordID, change.To); err != nil {
			return updated, services.Wrap(services.ErrStore, "photos", "update record", change.RecordID, err)
		}
		updated++
	}
	return updated, nil
}

func (s *Service) apply(ctx context.Context, logger *slog.Logger, changes []Change) (int, error) {
	updated, err := Apply(ctx, s.store, changes)
	if err != nil {
		logger.Error("photo update failed",
			logging.Int("updated_before_failure", updated),
			logging.Int("remaining", len(changes)-updated),
			logging.Error(err),
		)
		return updated, err
	}
	for _, change := range changes {
		logger.Debug("photo path updated",
			logging.String("record_id", change.RecordID),
			logging.String("property_value", change.PropertyValue),
			logging.String("from", change.From),
			logging.String("to", change.To),
		)
	}
	return updated, nil
}

// SweepReport summarizes a marker sweep.
type SweepReport struct {
	Markers     []string `json:"markers"`
	Placeholder string   `json:"placeholder"`
	DryRun      bool     `json:"dry_run"`
	Matched     int      `json:"matched"`
	Updated     int64    `json:"updated"`
	Remaining   int      `json:"remaining"`
}

// ErrMarkersRemain reports rows still carrying a marker phrase after a sweep.
var ErrMarkersRemain = errors.New("marker phrases remain after sweep")

// SweepMarkers rewrites every row whose path contains one of the marker
// phrases to the placeholder, regardless of property or photo type.
func (s *Service) SweepMarkers(ctx context.Context, markers []string, dryRun bool) (SweepReport, error) {
	logger := logging.WithContext(ctx, s.logger)
	report := SweepReport{Markers: markers, Placeholder: s.layout.Placeholder, DryRun: dryRun}
	if len(markers) == 0 {
		return report, services.Wrap(services.ErrConfiguration, "photos", "sweep", "no marker phrases configured", nil)
	}
	filter := Filter{PathContains: markers}

	matched, err := s.store.CountPhotos(ctx, filter)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "photos", "count marked records", "", err)
	}
	report.Matched = matched
	report.Remaining = matched
	if dryRun || matched == 0 {
		logger.Info("marker sweep finished", logging.Int("matched", matched), logging.Bool("dry_run", dryRun))
		return report, nil
	}

	updated, err := s.store.UpdatePhotoPaths(ctx, filter, s.layout.Placeholder)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "photos", "rewrite marked records", "", err)
	}
	report.Updated = updated

	remaining, err := s.store.CountPhotos(ctx, filter)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "photos", "recount marked records", "", err)
	}
	report.Remaining = remaining
	logger.Info("marker sweep finished",
		logging.Int("matched", matched),
		logging.Int64("updated", updated),
		logging.Int("remaining", remaining),
	)
	if remaining != 0 {
		return report, services.Wrap(services.ErrStore, "photos", "sweep", "", ErrMarkersRemain)
	}
	return report, nil
}
