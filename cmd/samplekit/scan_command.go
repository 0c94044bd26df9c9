package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"samplekit/internal/scan"
)

type scanOptions struct {
	json           bool
	failOnConflict bool
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan PATH",
		Short: "Report instruments whose channels repeat across notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}
			root := filepath.Clean(args[0])
			result, err := scan.New(scan.OptionsFromConfig(cfg), logger).Scan(ctx.runContext(cmd), root)
			if err != nil {
				return err
			}

			if opts.json {
				if result.Conflicts == nil {
					result.Conflicts = []scan.Conflict{}
				}
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				printScanResult(cmd.OutOrStdout(), result)
			}

			if opts.failOnConflict && len(result.Conflicts) > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Emit the result as JSON")
	cmd.Flags().BoolVar(&opts.failOnConflict, "fail-on-conflict", false, "Exit with status 1 when conflicts are found")
	return cmd
}

func printScanResult(out io.Writer, result scan.Result) {
	colors := newPalette(out)
	if len(result.Conflicts) > 0 {
		rows := make([][]string, 0, len(result.Conflicts))
		for _, c := range result.Conflicts {
			rows = append(rows, []string{c.Parent, c.Instrument, formatNotes(c), strings.Join(c.Duplicates, ", ")})
		}
		fmt.Fprintln(out, renderTable([]tableColumn{
			{title: "Parent", maxWidth: 48},
			{title: "Instrument"},
			{title: "Notes", maxWidth: 60},
			{title: "Duplicates"},
		}, rows))
	}

	conflicts := fmt.Sprintf("%d conflicts", len(result.Conflicts))
	if len(result.Conflicts) > 0 {
		conflicts = colors.warning(conflicts)
	} else {
		conflicts = colors.success(conflicts)
	}
	fmt.Fprintf(out, "%d samples, %d one-shots, %d skipped, %s\n", result.Samples, result.Oneshots, result.Skipped, conflicts)
	fmt.Fprintln(out, "done")
}

func formatNotes(c scan.Conflict) string {
	parts := make([]string, 0, len(c.Notes))
	for _, note := range c.SortedNotes() {
		parts = append(parts, fmt.Sprintf("%s: %s", note, strings.Join(c.Notes[note], ", ")))
	}
	return strings.Join(parts, "; ")
}
