package resolve

import (
	"time"

	"photodate/internal/datename"
	"photodate/internal/logging"
)

// Verdict is the outcome of reconciling a folder date with a file timestamp.
type Verdict string

const (
	// VerdictNoTimestamp means the file name carries no camera timestamp.
	VerdictNoTimestamp Verdict = "no-timestamp"
	// VerdictRefined means the timestamp agrees with the folder and wins.
	VerdictRefined Verdict = "refined"
	// VerdictConflict means the timestamp contradicts the folder; the folder wins.
	VerdictConflict Verdict = "conflict"
)

// Refinement is the refine-mode resolution of one file.
type Refinement struct {
	Folder       datename.Token
	FolderName   string
	Timestamp    time.Time
	HasTimestamp bool
	Final        time.Time
	Verdict      Verdict
}

// Resolution converts the refinement into the common resolution shape. A
// refined result is attributed to the file, everything else to the folder.
func (f Refinement) Resolution(stem string) Resolution {
	res := resolutionFrom(f.Folder, f.FolderName, SourceFolder)
	res.Date = f.Final
	if f.Verdict == VerdictRefined {
		res.SourceName = stem
		res.SourceKind = SourceFile
	}
	return res
}

// Refine resolves filePath in refine mode. It requires a dated ancestor
// folder and never consults the file stem as a date token; the bool is false
// when no ancestor carries a date.
func (r *Resolver) Refine(filePath string) (Refinement, bool) {
	folder, name, ok := r.Ancestor(filePath)
	if !ok {
		return Refinement{}, false
	}
	ts, hasTS := datename.ExtractTimestamp(Stem(filePath))
	final, verdict := Reconcile(folder, ts, hasTS)

	if verdict == VerdictConflict {
		r.logger.Debug("file timestamp outside folder date",
			logging.Path(r.Rel(filePath)),
			logging.String(logging.FieldSource, name),
			logging.String("folder", folder.String()),
			logging.Time("timestamp", ts),
		)
	}
	return Refinement{
		Folder:       folder,
		FolderName:   name,
		Timestamp:    ts,
		HasTimestamp: hasTS,
		Final:        final,
		Verdict:      verdict,
	}, true
}

// Reconcile picks the final date from a folder token and an optional file
// timestamp. Without a timestamp the folder value is used; a timestamp that
// is Consistent with the folder is used verbatim; otherwise the folder value
// wins.
func Reconcile(folder datename.Token, ts time.Time, hasTS bool) (time.Time, Verdict) {
	if !hasTS {
		return folder.Value, VerdictNoTimestamp
	}
	if Consistent(folder, ts) {
		return ts, VerdictRefined
	}
	return folder.Value, VerdictConflict
}

// Consistent reports whether ts falls inside the folder token at the
// folder's own precision. Ranges are inclusive at both ends.
func Consistent(folder datename.Token, ts time.Time) bool {
	start := folder.Value
	switch folder.Precision {
	case datename.PrecisionYear:
		if folder.HasRange() {
			return ts.Year() >= start.Year() && ts.Year() <= folder.RangeEnd.Year()
		}
		return ts.Year() == start.Year()
	case datename.PrecisionMonth:
		if ts.Year() != start.Year() {
			return false
		}
		if folder.HasRange() {
			return ts.Month() >= start.Month() && ts.Month() <= folder.RangeEnd.Month()
		}
		return ts.Month() == start.Month()
	case datename.PrecisionDay:
		if ts.Year() != start.Year() {
			return false
		}
		if folder.HasRange() {
			day := datename.DayOf(ts)
			return !day.Before(start) && !day.After(folder.RangeEnd)
		}
		return datename.SameDay(ts, start)
	default:
		return false
	}
}
