package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"doorops/internal/assets"
	"doorops/internal/config"
	"doorops/internal/photos"
	"doorops/internal/preflight"
)

func newPhotosCommand(ctx *commandContext) *cobra.Command {
	photosCmd := &cobra.Command{
		Use:   "photos",
		Short: "Reconcile and inspect property photo paths",
	}

	photosCmd.AddCommand(newPhotosReconcileCommand(ctx))
	photosCmd.AddCommand(newPhotosSweepCommand(ctx))
	photosCmd.AddCommand(newPhotosStatsCommand(ctx))

	return photosCmd
}

func photoLayout(cfg *config.Config) photos.Layout {
	return photos.Layout{LocalPrefix: cfg.Photos.LocalPrefix, Placeholder: cfg.Photos.Placeholder}
}

func newPhotosReconcileCommand(ctx *commandContext) *cobra.Command {
	var (
		policyFlag string
		dryRun     bool
		jsonOutput bool
		clearCache bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Converge every photo row of a property value onto one path",
		Long: `Groups the cover photos of the configured property by value and picks one
authoritative path per group.

  verify        first local path whose file exists under paths.asset_root,
                otherwise the placeholder; every row in the group is rewritten
  prefer-local  first local path without touching the filesystem; only rows
                pointing at external URLs are rewritten`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := photos.ParsePolicy(policyFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "photos.reconcile")

			var presence photos.Presence
			if policy == photos.PolicyVerify {
				if err := preflight.RequireAssetRoot(cfg.Paths.AssetRoot); err != nil {
					return err
				}
				presence = assets.NewChecker(cfg.Paths.AssetRoot, cfg.Photos.LocalPrefix, cfg.Photos.Placeholder)
			}

			run := func() error {
				return ctx.withStore(runCtx, func(st store) error {
					svc := photos.NewService(st, photoLayout(cfg), presence, logger)
					report, err := svc.Reconcile(runCtx, photos.ReconcileOptions{
						PropertyName: cfg.Photos.PropertyName,
						PhotoType:    cfg.Photos.CoverType,
						Policy:       policy,
						DryRun:       dryRun,
					})
					if jsonOutput {
						if encErr := writeJSON(cmd, report); encErr != nil && err == nil {
							err = encErr
						}
					} else {
						printReconcileReport(cmd, report)
					}
					if err != nil {
						return err
					}
					if clearCache && !dryRun {
						return ctx.clearCacheAfter(runCtx, cmd, logger, report.Updated > 0)
					}
					return nil
				})
			}
			if dryRun {
				return run()
			}
			return ctx.withRunLock(run)
		},
	}

	cmd.Flags().StringVar(&policyFlag, "policy", string(photos.PolicyVerify), "Precedence policy: verify or prefer-local")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the changes without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Invalidate the storefront listing cache after writing")
	return cmd
}

func printReconcileReport(cmd *cobra.Command, report photos.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummary(out, [][2]string{
		{"Policy", string(report.Policy)},
		{"Property", report.PropertyName},
		{"Photo type", report.PhotoType},
		{"Records", strconv.Itoa(report.Records)},
		{"Groups", strconv.Itoa(report.Groups)},
		{"Local targets", strconv.Itoa(report.LocalGroups)},
		{"Placeholder targets", strconv.Itoa(report.PlaceholderGroups)},
		{"Unresolved", strconv.Itoa(report.UnresolvedGroups)},
		{"Planned", strconv.Itoa(report.Planned)},
		{"Updated", strconv.Itoa(report.Updated)},
		{"Dry run", yesNo(report.DryRun)},
	}))
	if report.DryRun && len(report.Changes) > 0 {
		rows := make([][]string, 0, len(report.Changes))
		for _, change := range report.Changes {
			rows = append(rows, []string{change.RecordID, change.PropertyValue, change.From, change.To})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Record", "Value", "From", "To"}, rows, nil))
	}
}

func newPhotosSweepCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
		clearCache bool
	)

	cmd := &cobra.Command{
		Use:   "sweep-markers",
		Short: "Replace paths containing a marker phrase with the placeholder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "photos.sweep")

			run := func() error {
				return ctx.withStore(runCtx, func(st store) error {
					svc := photos.NewService(st, photoLayout(cfg), nil, logger)
					report, err := svc.SweepMarkers(runCtx, cfg.Photos.MarkerPhrases, dryRun)
					if jsonOutput {
						if encErr := writeJSON(cmd, report); encErr != nil && err == nil {
							err = encErr
						}
					} else {
						out := cmd.OutOrStdout()
						fmt.Fprintln(out, renderSummary(out, [][2]string{
							{"Markers", strconv.Itoa(len(report.Markers))},
							{"Placeholder", report.Placeholder},
							{"Matched", strconv.Itoa(report.Matched)},
							{"Updated", strconv.FormatInt(report.Updated, 10)},
							{"Remaining", strconv.Itoa(report.Remaining)},
							{"Dry run", yesNo(report.DryRun)},
						}))
					}
					if err != nil {
						return err
					}
					if clearCache && !dryRun {
						return ctx.clearCacheAfter(runCtx, cmd, logger, report.Updated > 0)
					}
					return nil
				})
			}
			if dryRun {
				return run()
			}
			return ctx.withRunLock(run)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count marked rows without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Invalidate the storefront listing cache after writing")
	return cmd
}

func newPhotosStatsCommand(ctx *commandContext) *cobra.Command {
	var (
		top        int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the cover photo rows of the configured property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "photos.stats")

			return ctx.withStore(runCtx, func(st store) error {
				svc := photos.NewService(st, photoLayout(cfg), nil, logger)
				stats, err := svc.Summarize(runCtx, cfg.Photos.PropertyName, cfg.Photos.CoverType, top)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, stats)
				}
				out := cmd.OutOrStdout()
				pairs := [][2]string{
					{"Property", stats.PropertyName},
					{"Photo type", stats.PhotoType},
					{"Records", strconv.Itoa(stats.Records)},
					{"Groups", strconv.Itoa(stats.Groups)},
					{"Inconsistent groups", strconv.Itoa(stats.InconsistentGroups)},
				}
				for _, kind := range []photos.PathKind{photos.KindLocal, photos.KindExternal, photos.KindPlaceholder, photos.KindEmpty, photos.KindOther} {
					pairs = append(pairs, [2]string{"Paths: " + kind.String(), strconv.Itoa(stats.ByKind[kind.String()])})
				}
				fmt.Fprintln(out, renderSummary(out, pairs))
				if len(stats.Largest) > 0 {
					rows := make([][]string, 0, len(stats.Largest))
					for _, entry := range stats.Largest {
						rows = append(rows, []string{entry.PropertyValue, strconv.Itoa(entry.Records), strconv.Itoa(entry.Paths)})
					}
					fmt.Fprintln(out, renderTable(out, []string{"Value", "Rows", "Distinct paths"}, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of largest groups to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON")
	return cmd
}
