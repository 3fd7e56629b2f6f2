package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"photodate/internal/config"
	"photodate/internal/journal"
	"photodate/internal/logging"
	"photodate/internal/metadata"
	"photodate/internal/preflight"
	"photodate/internal/runlock"
	"photodate/internal/workflow"
)

// errFailures makes the process exit 1 after a completed run in which at
// least one file could not be updated.
var errFailures = errors.New("some files could not be updated")

func runArchive(cmd *cobra.Command, ctx *commandContext, rootArg string, flags runFlags) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.verbose {
		cfg.Logging.Level = "debug"
	}

	root, err := filepath.Abs(rootArg)
	if err != nil {
		return fmt.Errorf("resolve archive root: %w", err)
	}

	// Preflight runs before the logger exists: the run log file and its
	// retention pass must never touch a log_dir inside the archive.
	if failed := preflight.Failed(preflight.RunAll(cfg, root, flags.apply)); len(failed) > 0 {
		for _, result := range failed {
			fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine(result.Name, statusError, result.Detail, shouldColorize(cmd.ErrOrStderr())))
		}
		return fmt.Errorf("preflight checks failed for %s", root)
	}

	runID := uuid.NewString()
	logger, err := logging.NewFromConfig(cfg, runID)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	if flags.apply {
		lock, err := runlock.Acquire(cfg.LockDir(), root)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("failed to release archive lock", logging.Error(err))
			}
		}()
	}

	store, mode, err := metadata.Open(metadata.OpenOptions{
		Session: metadata.SessionOptions{
			Binary:          cfg.ExiftoolBinary(),
			CommandTimeout:  cfg.CommandTimeout(),
			ShutdownTimeout: cfg.ShutdownTimeout(),
			MaxRestarts:     cfg.Exiftool.MaxRestarts,
		},
		Required: cfg.Exiftool.Required,
	}, logger)
	if err != nil {
		if errors.Is(err, metadata.ErrToolMissing) {
			return fmt.Errorf("%w\n%s", err, exiftoolInstallHint)
		}
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("metadata session close failed", logging.Error(err))
		}
	}()

	options := []workflow.RunnerOption{
		workflow.WithReporter(newReportWriter(out, reportOptions{
			apply:    flags.apply,
			refine:   flags.refine,
			verbose:  flags.verbose,
			colorize: colorize,
			mode:     mode,
		})),
	}

	var finish func(workflow.Summary)
	if flags.apply && cfg.Journal.Enabled && !flags.noJournal {
		journalStore, done, err := openJournal(signalCtx, cfg, runID, root, mode, flags, logger)
		if err != nil {
			return err
		}
		defer journalStore.Close()
		options = append(options, workflow.WithRecorder(journalStore))
		finish = done
	}

	renderRunHeader(out, root, flags, mode, colorize)

	runner := workflow.NewRunner(workflow.Options{
		Root:          root,
		Apply:         flags.apply,
		Refine:        flags.refine,
		KeepTimeOfDay: cfg.Apply.KeepTimeOfDay,
		RunID:         runID,
		Locale:        cfg.ReportLanguage(),
	}, store, logger, options...)

	summary, runErr := runner.Run(signalCtx)
	if finish != nil {
		finish(summary)
	}
	renderSummary(out, summary, colorize)
	if runErr != nil {
		return runErr
	}
	if summary.HasFailures() {
		return fmt.Errorf("%w (%d failed)", errFailures, summary.Failed)
	}
	return nil
}

// openJournal begins a journal run. The returned func records the totals;
// it uses a fresh context so an interrupted run still gets its row closed.
func openJournal(ctx context.Context, cfg *config.Config, runID, root string, mode metadata.Mode, flags runFlags, logger *slog.Logger) (*journal.Store, func(workflow.Summary), error) {
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	runMode := "apply"
	if flags.refine {
		runMode = "apply+refine"
	}
	if err := store.BeginRun(ctx, journal.Run{
		ID:           runID,
		ArchiveRoot:  root,
		Mode:         runMode,
		MetadataMode: string(mode),
	}); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	finish := func(summary workflow.Summary) {
		err := store.FinishRun(context.Background(), runID, journal.Totals{
			Total:           summary.Total,
			Applied:         summary.Applied,
			Failed:          summary.Failed,
			AlreadyMatching: summary.Matching,
			Undated:         summary.Undated,
		})
		if err != nil {
			logger.Warn("journal finish failed", logging.Error(err))
		}
	}
	return store, finish, nil
}

const exiftoolInstallHint = `Install exiftool:
  Ubuntu/Debian: sudo apt install libimage-exiftool-perl
  macOS:         brew install exiftool
  Windows:       https://exiftool.org/
or set [exiftool] required = false to write filesystem timestamps only.`
