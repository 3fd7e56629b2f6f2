package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/barasher/go-exiftool"

	"photodate/internal/logging"
)

// engine is the subset of *exiftool.Exiftool the session drives.
type engine interface {
	ExtractMetadata(files ...string) []exiftool.FileMetadata
	WriteMetadata(fileMetadata []exiftool.FileMetadata)
	Close() error
}

// SessionOptions configures an exiftool session.
type SessionOptions struct {
	Binary          string
	CommandTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxRestarts     int
}

// Option configures the session.
type Option func(*Session)

// withStarter replaces process startup; tests use it to inject engines.
func withStarter(start func() (engine, error)) Option {
	return func(s *Session) {
		if start != nil {
			s.start = start
		}
	}
}

// Session is a long-lived exiftool process shared by every file of a run.
// It is safe for sequential use from one goroutine; calls are serialized.
//
// go-exiftool does not expose the child process, so a process that stops
// answering cannot be killed. It is abandoned instead: the session stops
// using it, asks it to close in the background and starts a replacement. A
// process that is truly hung stays alive as an orphan after photodate exits
// and has to be killed by hand; Abandoned reports how many there were, and
// Close logs a warning naming the count.
type Session struct {
	mu        sync.Mutex
	opts      SessionOptions
	start     func() (engine, error)
	eng       engine
	restarts  int
	abandoned int
	closed    bool
	logger    *slog.Logger
}

// OpenSession starts exiftool in stay-open mode. It fails when the binary
// cannot be started.
func OpenSession(opts SessionOptions, logger *slog.Logger, options ...Option) (*Session, error) {
	s := &Session{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "exiftool"),
	}
	s.start = func() (engine, error) { return startExiftool(s.opts.Binary) }
	for _, opt := range options {
		opt(s)
	}
	eng, err := s.start()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	s.eng = eng
	return s, nil
}

func startExiftool(binary string) (engine, error) {
	opts := []func(*exiftool.Exiftool) error{
		exiftool.Charset("filename=utf8"),
		exiftool.Api("QuickTimeUTC"),
	}
	if strings.TrimSpace(binary) != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}
	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, err
	}
	return et, nil
}

// ReadDate returns the DateTimeOriginal of path.
func (s *Session) ReadDate(ctx context.Context, path string) (time.Time, bool, error) {
	var results []exiftool.FileMetadata
	err := s.do(ctx, "read", path, func(eng engine) {
		results = eng.ExtractMetadata(path)
	})
	if err != nil {
		return time.Time{}, false, err
	}
	if len(results) == 0 {
		return time.Time{}, false, nil
	}
	fm := results[0]
	if fm.Err != nil {
		return time.Time{}, false, fmt.Errorf("read metadata %s: %w", path, fm.Err)
	}
	raw, err := fm.GetString(PrimaryField)
	if err != nil {
		return time.Time{}, false, nil
	}
	t, ok := ParseDate(raw)
	return t, ok, nil
}

// WriteDate sets all WriteFields of path to t. exiftool rewrites the file
// in place without keeping an _original copy.
func (s *Session) WriteDate(ctx context.Context, path string, t time.Time) error {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	value := FormatDate(t)
	for _, field := range WriteFields {
		fm.SetString(field, value)
	}
	batch := []exiftool.FileMetadata{fm}
	err := s.do(ctx, "write", path, func(eng engine) {
		eng.WriteMetadata(batch)
	})
	if err != nil {
		return err
	}
	if batch[0].Err != nil {
		return fmt.Errorf("write metadata %s: %w", path, batch[0].Err)
	}
	return nil
}

// do runs op against the live process, bounded by the command timeout and
// ctx. On timeout the process is abandoned; the next call starts a new one.
func (s *Session) do(ctx context.Context, action, path string, op func(engine)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	eng, err := s.ensureLocked()
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		op(eng)
	}()

	var timeout <-chan time.Time
	if s.opts.CommandTimeout > 0 {
		timer := time.NewTimer(s.opts.CommandTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-done:
		return nil
	case <-timeout:
		s.abandonLocked(eng)
		logging.WarnWithContext(s.logger, "exiftool command timed out; process abandoned", "exiftool_timeout",
			logging.String("action", action),
			logging.String("file", path),
			logging.Duration("timeout", s.opts.CommandTimeout),
			logging.String(logging.FieldErrorHint, "raise exiftool.command_timeout for very large files"),
			logging.String(logging.FieldImpact, "metadata skipped for this file"),
		)
		return fmt.Errorf("%w: %s %s timed out after %s", ErrUnavailable, action, path, s.opts.CommandTimeout)
	case <-ctx.Done():
		s.abandonLocked(eng)
		return ctx.Err()
	}
}

func (s *Session) ensureLocked() (engine, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: session closed", ErrUnavailable)
	}
	if s.eng != nil {
		return s.eng, nil
	}
	if s.restarts >= s.opts.MaxRestarts {
		return nil, fmt.Errorf("%w: restart budget of %d exhausted", ErrUnavailable, s.opts.MaxRestarts)
	}
	s.restarts++
	eng, err := s.start()
	if err != nil {
		return nil, fmt.Errorf("%w: restart exiftool: %v", ErrUnavailable, err)
	}
	s.logger.Info("exiftool restarted", logging.Int("restart", s.restarts))
	s.eng = eng
	return eng, nil
}

// abandonLocked drops a process that stopped answering. Its Close blocks
// behind the stuck command, so it runs detached. A process that never
// answers again is not reaped.
func (s *Session) abandonLocked(eng engine) {
	s.eng = nil
	s.abandoned++
	go func() { _ = eng.Close() }()
}

// Abandoned reports how many processes were dropped after a timeout or
// cancellation.
func (s *Session) Abandoned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abandoned
}

// Restarts reports how many replacement processes were started.
func (s *Session) Restarts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restarts
}

// Close sends the stay-open termination request and waits up to the
// shutdown timeout for exiftool to exit.
func (s *Session) Close() error {
	s.mu.Lock()
	eng := s.eng
	s.eng = nil
	s.closed = true
	abandoned := s.abandoned
	s.mu.Unlock()
	if abandoned > 0 {
		logging.WarnWithContext(s.logger, "abandoned exiftool processes may still be running", "exiftool_orphaned",
			logging.Int("abandoned", abandoned),
			logging.String(logging.FieldErrorHint, "check for leftover exiftool processes (pgrep -f stay_open) and kill them"),
			logging.String(logging.FieldImpact, "hung processes outlive this run"),
		)
	}
	if eng == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- eng.Close() }()

	if s.opts.ShutdownTimeout <= 0 {
		return <-done
	}
	timer := time.NewTimer(s.opts.ShutdownTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close exiftool: %w", err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("exiftool did not exit within %s; the process may be left running", s.opts.ShutdownTimeout)
	}
}
