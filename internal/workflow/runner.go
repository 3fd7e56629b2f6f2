package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"photodate/internal/discover"
	"photodate/internal/fstime"
	"photodate/internal/journal"
	"photodate/internal/logging"
	"photodate/internal/metadata"
	"photodate/internal/resolve"
	"photodate/internal/textutil"
)

// Options controls one pass over an archive.
type Options struct {
	Root          string
	Apply         bool
	Refine        bool
	KeepTimeOfDay bool
	RunID         string
	// Locale orders the undated folder list.
	Locale language.Tag
}

// Reporter receives every file result in processing order.
type Reporter interface {
	FileProcessed(FileResult)
}

// Recorder journals files touched by an apply pass.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) error
}

// Runner processes the files of one archive.
type Runner struct {
	opts     Options
	resolver *resolve.Resolver
	store    metadata.Store
	logger   *slog.Logger

	reporter Reporter
	recorder Recorder
	stat     func(string) (fstime.Stamp, error)
	setTimes func(string, time.Time) error
}

// RunnerOption configures optional Runner behavior.
type RunnerOption func(*Runner)

// WithReporter attaches a per-file reporter.
func WithReporter(reporter Reporter) RunnerOption {
	return func(r *Runner) { r.reporter = reporter }
}

// WithRecorder journals applied files. Ignored in dry runs.
func WithRecorder(recorder Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = recorder }
}

// WithFilesystem replaces the timestamp read and write functions.
func WithFilesystem(stat func(string) (fstime.Stamp, error), set func(string, time.Time) error) RunnerOption {
	return func(r *Runner) {
		if stat != nil {
			r.stat = stat
		}
		if set != nil {
			r.setTimes = set
		}
	}
}

// NewRunner builds a Runner for opts.Root. store may be nil, in which case no
// metadata is read or written.
func NewRunner(opts Options, store metadata.Store, logger *slog.Logger, options ...RunnerOption) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	root := filepath.Clean(opts.Root)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	opts.Root = root
	r := &Runner{
		opts:     opts,
		resolver: resolve.New(root, logging.NewComponentLogger(logger, "resolve")),
		store:    store,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		stat:     fstime.Stat,
		setTimes: fstime.Set,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Run lists the archive and processes every file. The returned error is
// non-nil only when the root cannot be listed or ctx is cancelled; per-file
// failures are reported through the summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{
		RunID:  r.opts.RunID,
		Root:   r.opts.Root,
		Apply:  r.opts.Apply,
		Refine: r.opts.Refine,
	}

	listing, err := discover.Files(ctx, r.opts.Root, r.logger)
	if err != nil {
		return summary, err
	}
	summary.Total = len(listing.Files)
	summary.Hidden = listing.Hidden
	summary.Special = listing.Skipped
	summary.Unreadable = listing.Unreadable

	r.logger.Info("scan complete",
		logging.String(logging.FieldEventType, "scan_complete"),
		logging.Int("files", summary.Total),
		logging.Int("hidden_skipped", listing.Hidden),
		logging.Int("special_skipped", listing.Skipped),
		logging.Bool("apply", r.opts.Apply),
		logging.Bool("refine", r.opts.Refine),
	)

	undated := make(map[string]struct{})
	for _, path := range listing.Files {
		if err := ctx.Err(); err != nil {
			summary.UndatedFolders = r.sortedFolders(undated)
			summary.Duration = time.Since(started)
			return summary, fmt.Errorf("run interrupted: %w", err)
		}
		res := r.Process(ctx, path)
		summary.add(res)
		if res.Status == StatusUndated {
			undated[textutil.NormalizeName(filepath.Dir(res.RelPath))] = struct{}{}
		}
		if r.reporter != nil {
			r.reporter.FileProcessed(res)
		}
	}

	summary.UndatedFolders = r.sortedFolders(undated)
	summary.Duration = time.Since(started)
	r.logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("total", summary.Total),
		logging.Int("applied", summary.Applied),
		logging.Int("pending", summary.Pending),
		logging.Int("matching", summary.Matching),
		logging.Int("undated", summary.Undated),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// Process resolves, gates and (with apply) writes a single file.
func (r *Runner) Process(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path, RelPath: r.resolver.Rel(path)}
	logger := r.logger.With(logging.Path(res.RelPath))

	exact := false
	if r.opts.Refine {
		ref, ok := r.resolver.Refine(path)
		if !ok {
			res.Status = StatusUndated
			return res
		}
		res.Refinement = &ref
		res.Resolution = ref.Resolution(resolve.Stem(path))
		exact = ref.Verdict == resolve.VerdictRefined
	} else {
		resolution, ok := r.resolver.Select(path)
		if !ok {
			res.Status = StatusUndated
			return res
		}
		res.Resolution = resolution
	}

	before, err := r.stat(path)
	if err != nil {
		return r.fail(ctx, logger, res, err)
	}
	res.Before = before
	res.Metadata, res.HasMetadata = r.readMetadata(ctx, logger, path)

	decision := Evaluate(GateInput{
		Target:        res.Resolution.Date,
		Exact:         exact,
		Mtime:         before.Modified,
		Metadata:      res.Metadata,
		HasMetadata:   res.HasMetadata,
		KeepTimeOfDay: r.opts.KeepTimeOfDay,
	})
	res.Target = decision.Target
	res.KeptTimeOfDay = decision.KeptTimeOfDay

	if decision.Skip() {
		res.Status = StatusMatching
		logger.Debug("date already set",
			logging.String(logging.FieldEventType, "file_matching"),
			logging.Time("target", res.Target),
		)
		return res
	}
	if !r.opts.Apply {
		res.Status = StatusPending
		return res
	}

	if !decision.MetaMatches || !res.HasMetadata {
		r.writeMetadata(ctx, logger, &res)
	}
	if err := r.setTimes(path, res.Target); err != nil {
		return r.fail(ctx, logger, res, err)
	}
	res.Status = StatusApplied
	logger.Debug("timestamps applied",
		logging.String(logging.FieldEventType, "file_applied"),
		logging.String(logging.FieldSource, res.Resolution.SourceName),
		logging.Time("target", res.Target),
		logging.Bool("metadata_written", res.MetadataWritten),
	)
	r.record(ctx, logger, res)
	return res
}

func (r *Runner) readMetadata(ctx context.Context, logger *slog.Logger, path string) (time.Time, bool) {
	if r.store == nil {
		return time.Time{}, false
	}
	t, ok, err := r.store.ReadDate(ctx, path)
	if err != nil {
		logging.WarnWithContext(logger, "metadata read failed; treating date as absent", "metadata_read_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "file is gated on its filesystem timestamp only"),
		)
		return time.Time{}, false
	}
	return t, ok
}

// writeMetadata runs before the filesystem write because writing metadata
// rewrites the file and bumps its mtime.
func (r *Runner) writeMetadata(ctx context.Context, logger *slog.Logger, res *FileResult) {
	if r.store == nil {
		res.MetadataNote = "timestamps only"
		return
	}
	err := r.store.WriteDate(ctx, res.Path, res.Target)
	switch {
	case err == nil:
		res.MetadataWritten = true
	case errors.Is(err, metadata.ErrReadOnly):
		res.MetadataNote = "timestamps only"
	default:
		res.MetadataNote = "metadata not written"
		logging.WarnWithContext(logger, "metadata write failed; filesystem timestamps still applied", "metadata_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "embedded capture date unchanged"),
		)
	}
}

func (r *Runner) fail(ctx context.Context, logger *slog.Logger, res FileResult, err error) FileResult {
	res.Status = StatusFailed
	res.Err = err
	logging.ErrorWithContext(logger, "file update failed", "file_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check file permissions and ownership"),
		logging.String(logging.FieldImpact, "file timestamps unchanged"),
	)
	if r.opts.Apply {
		r.record(ctx, logger, res)
	}
	return res
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, res FileResult) {
	if r.recorder == nil || !r.opts.Apply {
		return
	}
	entry := journal.Entry{
		RunID:           r.opts.RunID,
		RelPath:         res.RelPath,
		SourceKind:      string(res.Resolution.SourceKind),
		SourceName:      res.Resolution.SourceName,
		Target:          res.Target,
		PreviousMtime:   res.Before.Modified,
		MetadataWritten: res.MetadataWritten,
		FSWritten:       res.Status == StatusApplied,
	}
	if entry.Target.IsZero() {
		entry.Target = res.Resolution.Date
	}
	if res.HasMetadata {
		entry.PreviousMetadata = res.Metadata
	}
	if res.Err != nil {
		entry.Error = res.Err.Error()
	}
	if err := r.recorder.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "journal write failed", "journal_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run history incomplete for this file"),
		)
	}
}

func (r *Runner) sortedFolders(set map[string]struct{}) []string {
	folders := make([]string, 0, len(set))
	for folder := range set {
		folders = append(folders, folder)
	}
	textutil.SortNames(folders, r.opts.Locale)
	return folders
}
