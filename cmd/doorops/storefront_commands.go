package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"doorops/internal/logging"
)

func newStorefrontCommand(ctx *commandContext) *cobra.Command {
	storefrontCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront API checks",
	}
	storefrontCmd.AddCommand(newStorefrontVerifyCommand(ctx))
	storefrontCmd.AddCommand(newStorefrontClearCacheCommand(ctx))
	return storefrontCmd
}

func parseQuery(pairs []string) (url.Values, error) {
	query := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query %q (want key=value)", pair)
		}
		query.Add(key, value)
	}
	return query, nil
}

func newStorefrontVerifyCommand(ctx *commandContext) *cobra.Command {
	var (
		queryPairs []string
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Fetch the door listing and check its structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(queryPairs)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.storefrontClient()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "storefront.verify")
			logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "storefront"))

			report, err := client.VerifyProducts(runCtx, query)
			if err != nil {
				return err
			}
			logger.Info("listing verified",
				logging.Int("models", report.Models),
				logging.Int("total_models", report.TotalModels),
				logging.Int("incomplete", len(report.Incomplete)),
			)
			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderSummary(out, [][2]string{
					{"URL", report.URL},
					{"Models", strconv.Itoa(report.Models)},
					{"Total models", strconv.Itoa(report.TotalModels)},
					{"Styles", strconv.Itoa(report.Styles)},
					{"Sizes", strconv.Itoa(report.Sizes)},
					{"Coatings", strconv.Itoa(report.Coatings)},
					{"Products", strconv.Itoa(report.Products)},
				}))
				if len(report.Incomplete) > 0 {
					rows := make([][]string, 0, len(report.Incomplete))
					for _, inc := range report.Incomplete {
						rows = append(rows, []string{inc.Model, strings.Join(inc.Missing, ", ")})
					}
					fmt.Fprintln(out, renderTable(out, []string{"Model", "Missing"}, rows, nil))
				}
			}
			if strict && !report.Consistent() {
				return fmt.Errorf("listing is inconsistent: %d of %d models incomplete, totalModels=%d", len(report.Incomplete), report.Models, report.TotalModels)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&queryPairs, "query", "q", nil, "Query parameter key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when models are incomplete or totalModels disagrees")
	return cmd
}

func newStorefrontClearCacheCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "clear-cache",
		Short: "Ask the storefront to drop its cached door listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.storefrontClient()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "storefront.clear_cache")
			report, err := client.ClearCache(runCtx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Storefront cache cleared: %s\n", orDash(report.Message))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the response as JSON")
	return cmd
}
