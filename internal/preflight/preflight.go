package preflight

import (
	"context"
	"errors"
	"strings"

	"doorops/internal/config"
	"doorops/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Pinger is satisfied by both store backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunAll executes every check that applies to cfg. db may be nil when the
// store could not be opened; the database check then reports the failure.
func RunAll(ctx context.Context, cfg *config.Config, db Pinger) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, true),
		CheckDirectoryAccess("Asset root", cfg.Paths.AssetRoot, false),
		CheckDatabase(ctx, cfg.Database.Driver, db),
	}
	if strings.TrimSpace(cfg.Storefront.BaseURL) != "" {
		results = append(results, CheckStorefront(ctx, cfg.Storefront.BaseURL))
	}
	return results
}

// RequireAssetRoot fails with ErrPreconditionFailed when the uploads
// directory cannot be listed.
func RequireAssetRoot(root string) error {
	result := CheckDirectoryAccess("Asset root", root, false)
	if result.Passed {
		return nil
	}
	return services.Wrap(services.ErrPreconditionFailed, "preflight", "asset root", result.Detail, nil)
}

// Failed returns the checks that did not pass, joined as one error.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, errors.New(r.Name+": "+r.Detail))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return services.Wrap(services.ErrPreconditionFailed, "preflight", "", "", errors.Join(errs...))
}
