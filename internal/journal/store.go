package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes; older databases are
// rejected rather than migrated.
const schemaVersion = 1

var (
	// ErrSchemaMismatch indicates the database was created by a different schema version.
	ErrSchemaMismatch = errors.New("journal schema version mismatch")
	// ErrRunNotFound is returned when no run matches an id or id prefix.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an id prefix matches several runs.
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

// Store is the journal database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the journal at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start a new journal)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// BeginRun inserts the run row. StartedAt defaults to now.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, archive_root, mode, metadata_mode, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.ArchiveRoot, run.Mode, run.MetadataMode, formatTime(run.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Record appends one file entry to a run.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (
            run_id, rel_path, source_kind, source_name, target,
            previous_mtime, previous_metadata, metadata_written, fs_written,
            error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.RelPath,
		entry.SourceKind,
		entry.SourceName,
		formatTime(entry.Target),
		nullableTime(entry.PreviousMtime),
		nullableTime(entry.PreviousMetadata),
		boolToInt(entry.MetadataWritten),
		boolToInt(entry.FSWritten),
		nullableString(entry.Error),
		formatTime(entry.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry %s: %w", entry.RelPath, err)
	}
	return nil
}

// FinishRun stores the run's totals and completion time.
func (s *Store) FinishRun(ctx context.Context, runID string, totals Totals) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs
         SET finished_at = ?, total = ?, applied = ?, failed = ?, already_matching = ?, undated = ?
         WHERE id = ?`,
		formatTime(time.Now()),
		totals.Total, totals.Applied, totals.Failed, totals.AlreadyMatching, totals.Undated,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

const runColumns = `id, archive_root, mode, metadata_mode, started_at, finished_at,
    total, applied, failed, already_matching, undated`

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// FindRun returns the run whose id equals or starts with idPrefix.
func (s *Store) FindRun(ctx context.Context, idPrefix string) (Run, error) {
	idPrefix = strings.TrimSpace(idPrefix)
	if idPrefix == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, ?) = ? ORDER BY started_at DESC LIMIT 2`,
		len(idPrefix), idPrefix,
	)
	if err != nil {
		return Run{}, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(found) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, idPrefix)
	case 1:
		return found[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, idPrefix)
	}
}

// Entries returns the entries of a run in insertion order.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, rel_path, source_kind, source_name, target, previous_mtime,
                previous_metadata, metadata_written, fs_written, error_message, recorded_at
         FROM entries WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                          Entry
			target, recorded           string
			prevMtime, prevMeta, errMs sql.NullString
			metaWritten, fsWritten     int
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.RelPath, &e.SourceKind, &e.SourceName, &target,
			&prevMtime, &prevMeta, &metaWritten, &fsWritten, &errMs, &recorded); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.Target, err = parseTime(target); err != nil {
			return nil, err
		}
		if e.RecordedAt, err = parseTime(recorded); err != nil {
			return nil, err
		}
		if e.PreviousMtime, err = parseNullableTime(prevMtime); err != nil {
			return nil, err
		}
		if e.PreviousMetadata, err = parseNullableTime(prevMeta); err != nil {
			return nil, err
		}
		e.MetadataWritten = metaWritten != 0
		e.FSWritten = fsWritten != 0
		e.Error = errMs.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
