package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"doorops/internal/config"
	"doorops/internal/logging"
	"doorops/internal/sheets"
)

func newSheetsCommand(ctx *commandContext) *cobra.Command {
	sheetsCmd := &cobra.Command{
		Use:   "sheets",
		Short: "Supplier workbook utilities",
	}
	sheetsCmd.AddCommand(newSheetsInspectCommand(ctx))
	return sheetsCmd
}

func newSheetsInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		sampleRows int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.xlsx>",
		Short: "Show the sheets, header row, and first rows of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			book, err := sheets.Inspect(path, sampleRows)
			if err != nil {
				return err
			}
			logger.Debug("workbook inspected", logging.String("path", path), logging.Int("sheets", len(book.Sheets)))
			if jsonOutput {
				return writeJSON(cmd, book)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workbook: %s\n", book.Path)
			for _, sheet := range book.Sheets {
				fmt.Fprintf(out, "\n%s\n", sheet)
				if len(sheet.Header) == 0 {
					continue
				}
				headers := make([]string, sheet.Columns)
				for i := range headers {
					if i < len(sheet.Header) && strings.TrimSpace(sheet.Header[i]) != "" {
						headers[i] = sheet.Header[i]
					} else {
						headers[i] = fmt.Sprintf("#%d", i+1)
					}
				}
				fmt.Fprintln(out, renderTable(out, headers, sheet.Sample, nil))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&sampleRows, "rows", "n", sheets.DefaultSampleRows, "Number of data rows to show per sheet")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the description as JSON")
	return cmd
}
