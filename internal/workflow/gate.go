package workflow

import (
	"time"

	"photodate/internal/datename"
	"photodate/internal/fstime"
)

// GateInput is what the apply gate looks at for one file.
type GateInput struct {
	Target time.Time
	// Exact is set when Target is a full filename timestamp rather than a
	// midday placeholder derived from a name token.
	Exact       bool
	Mtime       time.Time
	Metadata    time.Time
	HasMetadata bool
	// KeepTimeOfDay lets an existing time on the target's calendar day stand
	// in for a placeholder target.
	KeepTimeOfDay bool
}

// GateDecision is the gate's verdict.
type GateDecision struct {
	// Target is the instant to write. It differs from the input target only
	// when an existing time of day was kept.
	Target        time.Time
	FSMatches     bool
	MetaMatches   bool
	KeptTimeOfDay bool
}

// Skip reports whether nothing needs to be written.
func (d GateDecision) Skip() bool {
	return d.FSMatches && d.MetaMatches
}

// Evaluate decides whether a file already carries its target date. The
// filesystem matches within fstime.Tolerance; the metadata matches when it is
// absent or equal to the second. An absent metadata date never forces an
// update, so formats without embedded dates stay idempotent.
func Evaluate(in GateInput) GateDecision {
	target := in.Target
	kept := false
	if in.KeepTimeOfDay && !in.Exact {
		switch {
		case in.HasMetadata && datename.SameDay(in.Metadata, in.Target):
			target = in.Metadata
			kept = true
		case !in.Mtime.IsZero() && datename.SameDay(in.Mtime, in.Target):
			target = in.Mtime.Truncate(time.Second)
			kept = true
		}
	}
	return GateDecision{
		Target:        target,
		FSMatches:     fstime.Within(in.Mtime, target, fstime.Tolerance),
		MetaMatches:   !in.HasMetadata || sameSecond(in.Metadata, target),
		KeptTimeOfDay: kept && !target.Equal(in.Target),
	}
}

func sameSecond(a, b time.Time) bool {
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}
