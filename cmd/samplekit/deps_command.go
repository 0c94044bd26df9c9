package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"samplekit/internal/deps"
	"samplekit/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Show the external tools join relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := preflight.CheckSystemDeps(cfg)
			if asJSON {
				if err := writeJSON(cmd, statuses); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colors := newPalette(out)
				rows := make([][]string, 0, len(statuses))
				for _, status := range statuses {
					state := colors.success("available")
					detail := status.Path
					if !status.Available {
						state = colors.failure("missing")
						if status.Optional {
							state = colors.warning("missing")
						}
						detail = status.Detail
					}
					rows = append(rows, []string{status.Name, status.Command, state, yesNo(!status.Optional), detail})
				}
				fmt.Fprintln(out, renderTable([]tableColumn{
					{title: "Tool"},
					{title: "Command"},
					{title: "Status"},
					{title: "Required"},
					{title: "Detail"},
				}, rows))
			}
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the tool list as JSON")
	return cmd
}
