package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"doorops/internal/logging"
	"doorops/internal/services"
)

// SeedReport lists what a seeding run created and what already existed.
type SeedReport struct {
	Parent  string   `json:"parent"`
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
	DryRun  bool     `json:"dry_run"`
}

// SeedCategories creates each named category under parentName unless a
// child with the same name already exists. Sort order follows the position
// in names. The parent must exist.
func SeedCategories(ctx context.Context, store Store, logger *slog.Logger, parentName string, names []string, dryRun bool) (SeedReport, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "catalog"))
	parentName = NormalizeName(parentName)
	report := SeedReport{Parent: parentName, DryRun: dryRun}

	parent, err := store.FindCategoryByName(ctx, parentName)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "catalog", "find parent", parentName, err)
	}
	if parent == nil {
		return report, services.Wrap(services.ErrPreconditionFailed, "catalog", "find parent", "category "+parentName+" does not exist", nil)
	}

	children, err := store.ListChildCategories(ctx, parent.ID)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "catalog", "list children", parentName, err)
	}
	fold := cases.Fold()
	existing := make(map[string]struct{}, len(children))
	for _, child := range children {
		existing[fold.String(NormalizeName(child.Name))] = struct{}{}
	}

	for i, raw := range names {
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		key := fold.String(name)
		if _, ok := existing[key]; ok {
			report.Skipped = append(report.Skipped, name)
			logger.Debug("category exists", logging.String("name", name))
			continue
		}
		existing[key] = struct{}{}
		if dryRun {
			report.Created = append(report.Created, name)
			continue
		}
		category := Category{
			ID:        uuid.NewString(),
			Name:      name,
			ParentID:  parent.ID,
			Level:     parent.Level + 1,
			SortOrder: i,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := store.InsertCategory(ctx, category); err != nil {
			return report, services.Wrap(services.ErrStore, "catalog", "insert category", name, err)
		}
		report.Created = append(report.Created, name)
		logger.Info("category created",
			logging.String("name", name),
			logging.String("id", category.ID),
			logging.Int("level", category.Level),
		)
	}

	logger.Info("category seeding finished",
		logging.String("parent", parentName),
		logging.Int("created", len(report.Created)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Bool("dry_run", dryRun),
	)
	return report, nil
}
