// Package logging assembles the slog loggers used by photodate.
//
// A run logs human-readable lines (or JSON) to stderr and, in parallel, a
// JSON record stream to a per-run file in the configured log directory; the
// two are joined by a fanout handler. Standard field keys (component, run_id,
// path, source) keep records greppable across runs, and NewNop gives tests a
// logger that discards everything.
package logging
