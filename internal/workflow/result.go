package workflow

import (
	"time"

	"photodate/internal/fstime"
	"photodate/internal/resolve"
)

// FileStatus is the outcome of one file.
type FileStatus string

const (
	StatusUndated  FileStatus = "undated"
	StatusMatching FileStatus = "matching"
	StatusPending  FileStatus = "pending"
	StatusApplied  FileStatus = "applied"
	StatusFailed   FileStatus = "failed"
)

// FileResult is handed to the Reporter once per file.
type FileResult struct {
	Path    string
	RelPath string
	Status  FileStatus

	Resolution resolve.Resolution
	// Refinement is set in refine mode for files with a dated ancestor.
	Refinement *resolve.Refinement

	// Target is the instant written (or that would be written in a dry run).
	Target        time.Time
	KeptTimeOfDay bool

	Before      fstime.Stamp
	Metadata    time.Time
	HasMetadata bool

	MetadataWritten bool
	// MetadataNote explains why metadata was not written while the
	// filesystem timestamps were.
	MetadataNote string
	Err          error
}

// Verdict returns the refine verdict, or "" outside refine mode.
func (r FileResult) Verdict() resolve.Verdict {
	if r.Refinement == nil {
		return ""
	}
	return r.Refinement.Verdict
}

// Summary aggregates one pass.
type Summary struct {
	RunID  string
	Root   string
	Apply  bool
	Refine bool

	Total           int
	WithDate        int
	Undated         int
	Matching        int
	Applied         int
	Pending         int
	Failed          int
	Refined         int
	Conflicts       int
	MetadataSkipped int
	Hidden          int
	// Special counts symlinks and other non-regular files left alone.
	Special int

	// UndatedFolders holds archive-relative folder paths, "." for the root,
	// sorted for the report locale.
	UndatedFolders []string
	// Unreadable lists directories the scan could not enter.
	Unreadable []string
	Duration   time.Duration
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(res FileResult) {
	switch res.Status {
	case StatusUndated:
		s.Undated++
		return
	case StatusMatching:
		s.Matching++
	case StatusPending:
		s.Pending++
	case StatusApplied:
		s.Applied++
	case StatusFailed:
		s.Failed++
	}
	s.WithDate++
	if res.Status == StatusMatching {
		return
	}
	switch res.Verdict() {
	case resolve.VerdictRefined:
		s.Refined++
	case resolve.VerdictConflict:
		s.Conflicts++
	}
	if res.Status == StatusApplied && !res.MetadataWritten && res.MetadataNote != "" {
		s.MetadataSkipped++
	}
}
