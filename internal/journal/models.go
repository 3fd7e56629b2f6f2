package journal

import "time"

// Run is one journaled invocation.
type Run struct {
	ID           string
	ArchiveRoot  string
	Mode         string
	MetadataMode string
	StartedAt    time.Time
	FinishedAt   time.Time
	Totals       Totals
}

// Finished reports whether the run completed and recorded its totals.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Totals are the counters stored when a run finishes.
type Totals struct {
	Total           int
	Applied         int
	Failed          int
	AlreadyMatching int
	Undated         int
}

// Entry is one file touched by a run.
type Entry struct {
	ID               int64
	RunID            string
	RelPath          string
	SourceKind       string
	SourceName       string
	Target           time.Time
	PreviousMtime    time.Time
	PreviousMetadata time.Time
	MetadataWritten  bool
	FSWritten        bool
	Error            string
	RecordedAt       time.Time
}
