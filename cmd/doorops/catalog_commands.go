package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"doorops/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Category and product maintenance",
	}

	catalogCmd.AddCommand(newCatalogSeedCommand(ctx))
	catalogCmd.AddCommand(newCatalogDeleteProductsCommand(ctx))

	return catalogCmd
}

func newCatalogSeedCommand(ctx *commandContext) *cobra.Command {
	var (
		parent     string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "seed-categories [name...]",
		Short: "Create the top-level categories under the catalog root",
		Long: `Creates each category under the parent (catalog.parent_category by default)
unless a child with the same name already exists. Names given as arguments
replace catalog.seed_categories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			names := cfg.Catalog.SeedCategories
			if len(args) > 0 {
				names = args
			}
			parentName := cfg.Catalog.ParentCategory
			if strings.TrimSpace(parent) != "" {
				parentName = parent
			}
			runCtx := ctx.runContext(cmd, "catalog.seed")

			run := func() error {
				return ctx.withStore(runCtx, func(st store) error {
					report, err := catalog.SeedCategories(runCtx, st, logger, parentName, names, dryRun)
					if err != nil {
						return err
					}
					if jsonOutput {
						return writeJSON(cmd, report)
					}
					out := cmd.OutOrStdout()
					rows := make([][]string, 0, len(report.Created)+len(report.Skipped))
					created := "created"
					if dryRun {
						created = "would create"
					}
					for _, name := range report.Created {
						rows = append(rows, []string{name, created})
					}
					for _, name := range report.Skipped {
						rows = append(rows, []string{name, "exists"})
					}
					fmt.Fprintf(out, "Parent: %s\n", report.Parent)
					fmt.Fprintln(out, renderTable(out, []string{"Category", "Result"}, rows, nil))
					return nil
				})
			}
			if dryRun {
				return run()
			}
			return ctx.withRunLock(run)
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent category name (defaults to catalog.parent_category)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be created without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}

func newCatalogDeleteProductsCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
		clearCache bool
	)

	cmd := &cobra.Command{
		Use:   "delete-products <category>",
		Short: "Delete every product filed under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "catalog.delete_products")

			run := func() error {
				return ctx.withStore(runCtx, func(st store) error {
					report, err := catalog.DeleteProducts(runCtx, st, logger, args[0], dryRun)
					if err != nil {
						return err
					}
					if jsonOutput {
						if err := writeJSON(cmd, report); err != nil {
							return err
						}
					} else {
						out := cmd.OutOrStdout()
						fmt.Fprintln(out, renderSummary(out, [][2]string{
							{"Category", report.Category},
							{"Category id", report.CategoryID},
							{"Matched", strconv.Itoa(report.Matched)},
							{"Deleted", strconv.FormatInt(report.Deleted, 10)},
							{"Dry run", yesNo(report.DryRun)},
						}))
					}
					if clearCache && !dryRun {
						return ctx.clearCacheAfter(runCtx, cmd, logger, report.Deleted > 0)
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

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count matching products without deleting")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Invalidate the storefront listing cache after deleting")
	return cmd
}
