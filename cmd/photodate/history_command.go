package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"photodate/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List journaled --apply runs, or the files of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			path := cfg.JournalPath()
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			store, err := journal.Open(path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				entries, err := store.Entries(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				renderRunEntries(out, run, entries)
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			renderRuns(out, runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}

func renderRuns(out io.Writer, runs []journal.Run) {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		finished := "interrupted"
		if run.Finished() {
			finished = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		rows = append(rows, []string{
			shortID(run.ID),
			formatDisplay(run.StartedAt.Local()),
			run.Mode,
			run.MetadataMode,
			strconv.Itoa(run.Totals.Total),
			strconv.Itoa(run.Totals.Applied),
			strconv.Itoa(run.Totals.Failed),
			finished,
			run.ArchiveRoot,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Mode", "Metadata", "Files", "Applied", "Failed", "Duration", "Archive"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
}

func renderRunEntries(out io.Writer, run journal.Run, entries []journal.Entry) {
	fmt.Fprintf(out, "Run %s  %s  %s\n", run.ID, formatDisplay(run.StartedAt.Local()), run.ArchiveRoot)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No files were changed in this run.")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := "ok"
		if e.Error != "" {
			result = e.Error
		}
		rows = append(rows, []string{
			e.RelPath,
			e.SourceKind + ": " + e.SourceName,
			formatDisplay(e.PreviousMtime),
			formatDisplay(e.PreviousMetadata),
			formatDisplay(e.Target),
			yesNo(e.MetadataWritten),
			result,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Source", "Previous mtime", "Previous metadata", "Target", "Metadata", "Result"},
		rows,
		nil,
	))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
