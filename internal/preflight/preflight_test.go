package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"photodate/internal/config"
)

func TestCheckArchiveRoot_OK(t *testing.T) {
	dir := t.TempDir()
	for _, apply := range []bool{false, true} {
		if result := CheckArchiveRoot(dir, apply); !result.Passed {
			t.Fatalf("apply=%v: expected pass for temp dir, got: %s", apply, result.Detail)
		}
	}
}

func TestCheckArchiveRoot_NotExist(t *testing.T) {
	result := CheckArchiveRoot(filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckArchiveRoot_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckArchiveRoot(f, false); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckArchiveRoot_ReadOnlyNeedsWriteForApply(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckArchiveRoot(dir, false); !result.Passed {
		t.Fatalf("dry run should accept read-only archive: %s", result.Detail)
	}
	if result := CheckArchiveRoot(dir, true); result.Passed {
		t.Fatal("apply should reject read-only archive")
	}
}

func TestCheckDirectoryAccess_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state", "nested")
	if result := CheckDirectoryAccess("State directory", dir); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestCheckStateOutsideArchive(t *testing.T) {
	archive := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.StateDir, "logs")
	if result := CheckStateOutsideArchive(&cfg, archive); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}

	cfg.Paths.LogDir = filepath.Join(archive, ".photodate", "logs")
	if result := CheckStateOutsideArchive(&cfg, archive); result.Passed {
		t.Fatal("expected failure for log dir inside archive")
	}
}

func TestRunAllReportsFailures(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.StateDir, "logs")

	results := RunAll(&cfg, t.TempDir(), true)
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	results = RunAll(&cfg, filepath.Join(t.TempDir(), "missing"), false)
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "Archive root" {
		t.Fatalf("expected archive root failure, got %+v", failed)
	}
}

func TestRunAllDoesNotCreateStateInsideArchive(t *testing.T) {
	archive := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(archive, ".photodate")
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.StateDir, "logs")

	failed := Failed(RunAll(&cfg, archive, false))
	if len(failed) != 1 || failed[0].Name != "State location" {
		t.Fatalf("expected state location failure only, got %+v", failed)
	}
	if _, err := os.Stat(cfg.Paths.StateDir); !os.IsNotExist(err) {
		t.Fatalf("state dir was created inside the archive: %v", err)
	}
}
