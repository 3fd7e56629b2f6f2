package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"photodate/internal/config"
)

// LogFilePattern matches the per-run log files written under paths.log_dir.
const LogFilePattern = "photodate-*.log"

// Options describes logger construction parameters.
type Options struct {
	Level string
	// Format applies to OutputPaths: console or json.
	Format string
	// OutputPaths defaults to stderr so the run report on stdout stays clean.
	OutputPaths []string
	// FilePath, when set, receives every record as JSON at debug level,
	// regardless of Level and Format.
	FilePath    string
	Development bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	outputWriter, err := openWriters(defaultSlice(opts.OutputPaths, []string{"stderr"}))
	if err != nil {
		return nil, err
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var primary slog.Handler
	switch format {
	case "json":
		primary = newJSONHandler(outputWriter, levelVar, addSource)
	case "console":
		primary = newConsoleHandler(outputWriter, levelVar, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	if strings.TrimSpace(opts.FilePath) == "" {
		return slog.New(primary), nil
	}
	fileWriter, err := openWriters([]string{opts.FilePath})
	if err != nil {
		return nil, err
	}
	return slog.New(newFanoutHandler(primary, newJSONHandler(fileWriter, slog.LevelDebug, true))), nil
}

// NewFromConfig creates the run logger: console (or JSON) on stderr plus a
// JSON log file for this run under paths.log_dir. Log files older than
// logging.retention_days are pruned.
func NewFromConfig(cfg *config.Config, runID string) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	var logPath string
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		logPath = filepath.Join(cfg.Paths.LogDir, runLogName(time.Now(), runID))
	}

	logger, err := New(Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: logPath,
	})
	if err != nil {
		return nil, err
	}
	logger = WithRunID(logger, runID)

	if logPath != "" {
		CleanupOldLogs(logger, cfg.Logging.RetentionDays, RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: LogFilePattern,
			Exclude: []string{logPath},
		})
	}
	return logger, nil
}

func runLogName(now time.Time, runID string) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	if short == "" {
		return fmt.Sprintf("photodate-%s.log", now.Format("20060102-150405"))
	}
	return fmt.Sprintf("photodate-%s-%s.log", now.Format("20060102-150405"), short)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultSlice(value []string, fallback []string) []string {
	if len(value) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), value...)
}

func openWriters(paths []string) (io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := ensureLogDir(trimmed); err != nil {
				return nil, err
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
