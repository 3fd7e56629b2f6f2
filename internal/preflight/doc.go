// Package preflight provides readiness checks that run before photodate
// touches an archive.
//
// These checks run in two contexts:
//   - The root command calls RunAll before the scan. Any failure aborts the
//     run before a single file is visited.
//   - "photodate deps" prints the same results next to the binary checks.
package preflight
