package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"photodate/internal/runlock"
)

func TestAcquireExclusive(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	root := t.TempDir()

	first, err := runlock.Acquire(lockDir, root)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if _, err := runlock.Acquire(lockDir, root); !errors.Is(err, runlock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := runlock.Acquire(lockDir, root)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	defer again.Release()
}

func TestDifferentArchivesDoNotConflict(t *testing.T) {
	lockDir := t.TempDir()
	a, err := runlock.Acquire(lockDir, filepath.Join(t.TempDir(), "a"))
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	defer a.Release()
	b, err := runlock.Acquire(lockDir, filepath.Join(t.TempDir(), "b"))
	if err != nil {
		t.Fatalf("Acquire b: %v", err)
	}
	defer b.Release()
	if a.Path() == b.Path() {
		t.Fatal("distinct archives share a lock file")
	}
}

func TestPathForNormalizesRoot(t *testing.T) {
	dir := t.TempDir()
	if runlock.PathFor("/locks", dir) != runlock.PathFor("/locks", dir+"/./") {
		t.Fatal("equivalent roots produced different lock paths")
	}
}
