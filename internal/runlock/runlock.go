// Package runlock keeps two apply runs from working on the same archive at
// once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the archive lock.
var ErrLocked = errors.New("archive is locked by another photodate run")

// Lock is an acquired per-archive lock file.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for root inside lockDir. The name is
// derived from the absolute root so differently spelled paths share a lock.
func PathFor(lockDir, root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:])[:16]+".lock")
}

// Acquire takes the archive lock without blocking.
func Acquire(lockDir, root string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := PathFor(lockDir, root)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks. The lock file stays on disk.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
