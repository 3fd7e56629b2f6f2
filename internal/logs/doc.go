// Package logs locates per-run log files under paths.log_dir and reads their
// last lines with bounded memory. It backs `photodate logs`.
package logs
