package catalog

import (
	"context"
	"log/slog"

	"doorops/internal/logging"
	"doorops/internal/services"
)

// DeleteReport summarizes a bulk product delete.
type DeleteReport struct {
	Category   string `json:"category"`
	CategoryID string `json:"category_id"`
	DryRun     bool   `json:"dry_run"`
	Matched    int    `json:"matched"`
	Deleted    int64  `json:"deleted"`
}

// DeleteProducts removes every product filed under categoryName. The
// category itself is kept.
func DeleteProducts(ctx context.Context, store Store, logger *slog.Logger, categoryName string, dryRun bool) (DeleteReport, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "catalog"))
	categoryName = NormalizeName(categoryName)
	report := DeleteReport{Category: categoryName, DryRun: dryRun}
	if categoryName == "" {
		return report, services.Wrap(services.ErrPreconditionFailed, "catalog", "delete products", "category name is empty", nil)
	}

	category, err := store.FindCategoryByName(ctx, categoryName)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "catalog", "find category", categoryName, err)
	}
	if category == nil {
		return report, services.Wrap(services.ErrPreconditionFailed, "catalog", "find category", "category "+categoryName+" does not exist", nil)
	}
	report.CategoryID = category.ID

	matched, err := store.CountProducts(ctx, category.ID)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "catalog", "count products", categoryName, err)
	}
	report.Matched = matched
	if dryRun || matched == 0 {
		logger.Info("product delete finished",
			logging.String("category", categoryName),
			logging.Int("matched", matched),
			logging.Bool("dry_run", dryRun),
		)
		return report, nil
	}

	deleted, err := store.DeleteProducts(ctx, category.ID)
	if err != nil {
		return report, services.Wrap(services.ErrStore, "catalog", "delete products", categoryName, err)
	}
	report.Deleted = deleted
	logger.Info("product delete finished",
		logging.String("category", categoryName),
		logging.Int("matched", matched),
		logging.Int64("deleted", deleted),
	)
	return report, nil
}
