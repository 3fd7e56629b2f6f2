package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"photodate/internal/deps"
	"photodate/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tools photodate relies on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			statuses := preflight.CheckSystemDeps(cfg)

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "available"
				if !status.Available {
					state = "missing"
					if status.Detail != "" {
						state += " (" + status.Detail + ")"
					}
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(!status.Optional),
					state,
					status.Description,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command", "Required", "Status", "Purpose"},
				rows,
				nil,
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, exiftoolInstallHint)
				return fmt.Errorf("%d required dependency(ies) missing", len(missing))
			}
			return nil
		},
	}
}
