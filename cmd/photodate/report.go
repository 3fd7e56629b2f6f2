package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"photodate/internal/metadata"
	"photodate/internal/resolve"
	"photodate/internal/workflow"
)

const displayLayout = "2006-01-02 15:04:05"

// detailIndent lines continuation rows up under the path.
const detailIndent = "            "

type reportOptions struct {
	apply    bool
	refine   bool
	verbose  bool
	colorize bool
	mode     metadata.Mode
}

// reportWriter renders one block per file as the workflow reports it.
type reportWriter struct {
	out  io.Writer
	opts reportOptions
}

func newReportWriter(out io.Writer, opts reportOptions) *reportWriter {
	return &reportWriter{out: out, opts: opts}
}

func (w *reportWriter) FileProcessed(res workflow.FileResult) {
	switch res.Status {
	case workflow.StatusUndated:
		if w.opts.verbose {
			w.line(paint("  skip  "+res.RelPath+"  (no date in path)", ansiDim, w.opts.colorize))
		}
	case workflow.StatusMatching:
		if w.opts.verbose {
			w.line(paint(fmt.Sprintf("  =     %s  already %s", res.RelPath, formatDisplay(res.Target)), ansiDim, w.opts.colorize))
		}
	case workflow.StatusPending:
		w.pending(res)
	case workflow.StatusApplied:
		extra := ""
		if res.MetadataNote != "" {
			extra = "  (" + res.MetadataNote + ")"
		}
		w.line(paint(fmt.Sprintf("  ✓ %s  →  %s%s", res.RelPath, formatDisplay(res.Target), extra), ansiGreen, w.opts.colorize))
		w.refineLines(res)
	case workflow.StatusFailed:
		w.line(paint(fmt.Sprintf("  ✗ %s  →  error: %v", res.RelPath, res.Err), ansiRed, w.opts.colorize))
	}
}

func (w *reportWriter) pending(res workflow.FileResult) {
	w.line(paint("  [DRY-RUN] "+res.RelPath, ansiYellow, w.opts.colorize))
	w.detail(sourceLabel(res.Resolution.SourceKind), res.Resolution.SourceName)
	if res.HasMetadata {
		w.detail("metadata", formatDisplay(res.Metadata))
	}
	w.detail("mtime", formatDisplay(res.Before.Modified))
	if w.opts.verbose && res.Before.HasBirth {
		w.detail("birth", formatDisplay(res.Before.Birth))
	}
	w.refineLines(res)
	target := formatDisplay(res.Target)
	if res.KeptTimeOfDay {
		target += "  (time of day kept)"
	}
	w.detail("will be", target)
	w.line("")
}

// refineLines is only called for files that change, so a refine verdict is
// never printed for a file whose date is already set.
func (w *reportWriter) refineLines(res workflow.FileResult) {
	ref := res.Refinement
	if ref == nil {
		return
	}
	switch ref.Verdict {
	case resolve.VerdictRefined:
		w.line(paint(fmt.Sprintf("%s[refined] %s within %s", detailIndent, formatDisplay(ref.Timestamp), ref.FolderName), ansiBlue, w.opts.colorize))
	case resolve.VerdictConflict:
		w.line(paint(fmt.Sprintf("%s[conflict] file %s outside %s (%s); folder date kept", detailIndent,
			formatDisplay(ref.Timestamp), ref.FolderName, ref.Folder.String()), ansiYellow, w.opts.colorize))
	}
}

func (w *reportWriter) detail(label, value string) {
	w.line(fmt.Sprintf("%s%-9s %s", detailIndent, label+":", value))
}

func (w *reportWriter) line(s string) {
	fmt.Fprintln(w.out, s)
}

func sourceLabel(kind resolve.SourceKind) string {
	if kind == resolve.SourceFile {
		return "file"
	}
	return "folder"
}

func formatDisplay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(displayLayout)
}

func renderRunHeader(out io.Writer, root string, flags runFlags, mode metadata.Mode, colorize bool) {
	modeLabel := "DRY-RUN (nothing is written)"
	if flags.apply {
		modeLabel = "APPLY"
	}
	if flags.refine {
		modeLabel += ", refine"
	}
	for _, line := range renderSectionHeader("photodate", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, modeLabel, colorize))
	fmt.Fprintln(out, renderStatusLine("Archive", statusInfo, root, colorize))
	metaKind, metaMsg := statusOK, string(mode)
	if mode == metadata.ModeNative {
		metaKind, metaMsg = statusWarn, "built-in EXIF reader (timestamps only)"
	}
	fmt.Fprintln(out, renderStatusLine("Metadata", metaKind, metaMsg, colorize))
	fmt.Fprintln(out)
}

func renderSummary(out io.Writer, s workflow.Summary, colorize bool) {
	rows := [][2]string{
		{"Total files", strconv.Itoa(s.Total)},
		{"With date", strconv.Itoa(s.WithDate)},
		{"Without date (skipped)", strconv.Itoa(s.Undated)},
		{"Already matching", strconv.Itoa(s.Matching)},
	}
	if s.Apply {
		rows = append(rows,
			[2]string{"Applied", strconv.Itoa(s.Applied)},
			[2]string{"Failed", strconv.Itoa(s.Failed)},
			[2]string{"Metadata skipped", strconv.Itoa(s.MetadataSkipped)},
		)
	} else {
		rows = append(rows, [2]string{"Would change (dry-run)", strconv.Itoa(s.Pending)})
	}
	if s.Refine {
		rows = append(rows,
			[2]string{"Refined from file name", strconv.Itoa(s.Refined)},
			[2]string{"Conflicts (folder kept)", strconv.Itoa(s.Conflicts)},
		)
	}
	if s.Hidden > 0 || s.Special > 0 {
		rows = append(rows, [2]string{"Hidden or special (ignored)", strconv.Itoa(s.Hidden + s.Special)})
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderCounts("Summary", rows))

	if !s.Apply && s.Pending > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, paint("Run again with --apply to write these changes.", ansiYellow, colorize))
	}
	if len(s.UndatedFolders) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Folders without a date:")
		for _, folder := range s.UndatedFolders {
			fmt.Fprintf(out, "  • %s\n", folder)
		}
	}
	if len(s.Unreadable) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, paint("Unreadable directories (not processed):", ansiRed, colorize))
		for _, dir := range s.Unreadable {
			fmt.Fprintf(out, "  • %s\n", dir)
		}
	}
	if s.Failed > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, paint(fmt.Sprintf("%d file(s) failed; see the lines marked ✗ above.", s.Failed), ansiRed, colorize))
	}
}
