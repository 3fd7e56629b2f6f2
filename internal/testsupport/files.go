package testsupport

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// Tree creates files (slash-separated, relative to root) with a small body
// and a fixed, recent mtime so no file starts out matching a name date.
func Tree(t testing.TB, root string, files ...string) {
	t.Helper()
	stamp := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		WriteFile(t, path, 16)
		SetMtime(t, path, stamp)
	}
}

// SetMtime sets both mtime and atime of path.
func SetMtime(t testing.TB, path string, when time.Time) {
	t.Helper()
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// Mtime returns the modification time of path.
func Mtime(t testing.TB, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return info.ModTime()
}

// Entry is one node in a tree snapshot.
type Entry struct {
	Dir     bool
	Size    int64
	ModTime time.Time
}

// Snapshot records every entry below root, hidden ones included, keyed by
// slash-separated relative path.
func Snapshot(t testing.TB, root string) map[string]Entry {
	t.Helper()
	snap := make(map[string]Entry)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		snap[filepath.ToSlash(rel)] = Entry{Dir: d.IsDir(), Size: info.Size(), ModTime: info.ModTime()}
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return snap
}

// RequireSameStructure fails when the two snapshots differ in paths or entry
// kinds. Sizes and timestamps are ignored since metadata writes change both.
func RequireSameStructure(t testing.TB, before, after map[string]Entry) {
	t.Helper()
	var problems []string
	for path, b := range before {
		a, ok := after[path]
		switch {
		case !ok:
			problems = append(problems, "missing "+path)
		case a.Dir != b.Dir:
			problems = append(problems, "kind changed "+path)
		}
	}
	for path := range after {
		if _, ok := before[path]; !ok {
			problems = append(problems, "added "+path)
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		t.Fatalf("archive structure changed: %v", problems)
	}
}

// RequireUnchanged fails when any entry differs, timestamps included.
func RequireUnchanged(t testing.TB, before, after map[string]Entry) {
	t.Helper()
	RequireSameStructure(t, before, after)
	for path, b := range before {
		if b.Dir {
			continue
		}
		if a := after[path]; !a.ModTime.Equal(b.ModTime) || a.Size != b.Size {
			t.Fatalf("%s changed: before %+v after %+v", path, b, a)
		}
	}
}
