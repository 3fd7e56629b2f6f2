// Package workflow runs one pass over an archive: it lists the files,
// resolves a date for each one, decides whether the file already carries that
// date, and (with apply) writes embedded metadata and filesystem timestamps.
//
// Files are processed one at a time. A failure on one file is recorded in its
// FileResult and the summary; it never stops the pass. The Runner itself has
// no output of its own beyond structured logs: callers attach a Reporter to
// render per-file lines and a Recorder to journal applied writes.
package workflow
