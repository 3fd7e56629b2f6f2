// Package fstime reads and writes filesystem timestamps of archive files.
package fstime

import (
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
)

// Tolerance is the largest difference at which two timestamps still count as
// equal. Filesystems round mtime differently; a second covers them all.
const Tolerance = time.Second

// Stamp holds the timestamps of one file. Birth is only meaningful when
// HasBirth is set; it is reported but never written.
type Stamp struct {
	Modified time.Time
	Accessed time.Time
	Birth    time.Time
	HasBirth bool
}

// Stat reads the timestamps of path, following symlinks.
func Stat(path string) (Stamp, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return Stamp{}, fmt.Errorf("stat timestamps %s: %w", path, err)
	}
	stamp := Stamp{
		Modified: ts.ModTime(),
		Accessed: ts.AccessTime(),
	}
	if ts.HasBirthTime() {
		stamp.Birth = ts.BirthTime()
		stamp.HasBirth = true
	}
	return stamp, nil
}

// Set sets both the modification and access time of path to t. It is a
// single call with no retry.
func Set(path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		return fmt.Errorf("set timestamps %s: %w", path, err)
	}
	return nil
}

// Within reports whether a and b differ by strictly less than tolerance.
func Within(a, b time.Time, tolerance time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < tolerance
}
