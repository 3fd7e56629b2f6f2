package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photodate/internal/logging"
	"photodate/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [run-id]",
		Short: "Show the log of the latest run, or of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			out := cmd.OutOrStdout()
			path, err := logs.Find(cfg.Paths.LogDir, logging.LogFilePattern, prefix)
			if errors.Is(err, logs.ErrNoLogs) && prefix == "" {
				fmt.Fprintln(out, "No run logs yet.")
				return nil
			}
			if err != nil {
				return err
			}
			tail, err := logs.Tail(path, lines)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", path)
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show (0 for all)")
	return cmd
}
