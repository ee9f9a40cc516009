package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"doorops/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the log dir, asset root, database, and storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd, "status")

			var results []preflight.Result
			storeErr := ctx.withStore(runCtx, func(st store) error {
				results = preflight.RunAll(runCtx, cfg, st)
				return nil
			})
			if storeErr != nil {
				results = preflight.RunAll(runCtx, cfg, nil)
				results = append(results, preflight.Result{Name: "Database open", Detail: storeErr.Error()})
			}

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				printStatus(cmd, results)
			}
			return preflight.Failed(results)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the checks as JSON")
	return cmd
}

func printStatus(cmd *cobra.Command, results []preflight.Result) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		state := "ok"
		if !r.Passed {
			state = "FAIL"
		}
		rows = append(rows, []string{r.Name, state, r.Detail})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Check", "State", "Detail"}, rows, nil))
}
