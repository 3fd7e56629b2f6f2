// Package main hosts the photodate CLI entrypoint and command graph.
//
// The root command takes an archive directory and runs one pass of the
// date workflow over it: a dry run by default, writes only with --apply.
// Subcommands cover configuration scaffolding, external dependency checks,
// the run journal and per-run logs. All archive logic lives in internal
// packages; this package wires configuration, logging, the metadata session,
// the journal and the per-archive lock together and renders the report.
package main
