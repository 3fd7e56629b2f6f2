package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"photodate/internal/journal"
)

func openTestStore(t *testing.T) (*journal.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestRunLifecycle(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := store.BeginRun(ctx, journal.Run{
		ID:           "1f2e3d4c-aaaa",
		ArchiveRoot:  "/photos",
		Mode:         "apply",
		MetadataMode: "exiftool",
		StartedAt:    started,
	}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	target := time.Date(2018, 7, 14, 12, 0, 0, 0, time.Local)
	prev := time.Date(2023, 1, 2, 3, 4, 5, 0, time.Local)
	if err := store.Record(ctx, journal.Entry{
		RunID:           "1f2e3d4c-aaaa",
		RelPath:         "2018-07-14 Beach/IMG_1.jpg",
		SourceKind:      "folder",
		SourceName:      "2018-07-14 Beach",
		Target:          target,
		PreviousMtime:   prev,
		MetadataWritten: true,
		FSWritten:       true,
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, journal.Entry{
		RunID:      "1f2e3d4c-aaaa",
		RelPath:    "2018-07-14 Beach/broken.jpg",
		SourceKind: "folder",
		SourceName: "2018-07-14 Beach",
		Target:     target,
		Error:      "permission denied",
	}); err != nil {
		t.Fatalf("Record failure: %v", err)
	}

	if err := store.FinishRun(ctx, "1f2e3d4c-aaaa", journal.Totals{Total: 3, Applied: 1, Failed: 1, Undated: 1}); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err := store.FindRun(ctx, "1f2e")
	if err != nil {
		t.Fatalf("FindRun: %v", err)
	}
	if !run.Finished() {
		t.Fatal("expected run to be finished")
	}
	if !run.StartedAt.Equal(started) {
		t.Fatalf("started_at = %v, want %v", run.StartedAt, started)
	}
	if run.Totals.Applied != 1 || run.Totals.Failed != 1 || run.Totals.Total != 3 {
		t.Fatalf("unexpected totals %+v", run.Totals)
	}

	entries, err := store.Entries(ctx, run.ID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if !first.Target.Equal(target) || !first.PreviousMtime.Equal(prev) {
		t.Fatalf("times not preserved: %+v", first)
	}
	if !first.PreviousMetadata.IsZero() {
		t.Fatalf("expected empty previous metadata, got %v", first.PreviousMetadata)
	}
	if !first.MetadataWritten || !first.FSWritten {
		t.Fatalf("write flags lost: %+v", first)
	}
	if entries[1].Error != "permission denied" || entries[1].FSWritten {
		t.Fatalf("unexpected failure entry %+v", entries[1])
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"aaa", "bbb", "ccc"} {
		if err := store.BeginRun(ctx, journal.Run{ID: id, ArchiveRoot: "/a", Mode: "apply", MetadataMode: "native", StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("BeginRun %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "ccc" || runs[1].ID != "bbb" {
		t.Fatalf("unexpected order: %+v", runs)
	}
	if runs[0].Finished() {
		t.Fatal("unfinished run reported as finished")
	}
}

func TestFindRunErrors(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"abc1", "abc2"} {
		if err := store.BeginRun(ctx, journal.Run{ID: id, ArchiveRoot: "/a", Mode: "apply", MetadataMode: "exiftool"}); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
	}

	if _, err := store.FindRun(ctx, "abc"); !errors.Is(err, journal.ErrAmbiguousRun) {
		t.Fatalf("expected ErrAmbiguousRun, got %v", err)
	}
	if _, err := store.FindRun(ctx, "zzz"); !errors.Is(err, journal.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if err := store.FinishRun(ctx, "missing", journal.Totals{}); !errors.Is(err, journal.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound on finish, got %v", err)
	}
}

func TestBeginRunRequiresID(t *testing.T) {
	store, _ := openTestStore(t)
	if err := store.BeginRun(context.Background(), journal.Run{ArchiveRoot: "/a"}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	store, path := openTestStore(t)
	if err := store.BeginRun(context.Background(), journal.Run{ID: "persisted", ArchiveRoot: "/a", Mode: "apply", MetadataMode: "exiftool"}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.FindRun(context.Background(), "persisted"); err != nil {
		t.Fatalf("FindRun after reopen: %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	store, path := openTestStore(t)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
