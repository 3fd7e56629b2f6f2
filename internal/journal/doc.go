// Package journal records applied runs in a SQLite database under the state
// directory.
//
// Each --apply run gets a row keyed by its run id, and every file whose
// timestamps were written (or failed to be written) gets an entry holding the
// previous mtime and metadata date next to the target. Nothing in the journal
// is ever read back by the apply path; it exists so a user can see what a run
// changed and what the values were before.
package journal
