package metadata

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DateLayout is the EXIF/QuickTime date format.
const DateLayout = "2006:01:02 15:04:05"

// PrimaryField is the tag compared against the target date.
const PrimaryField = "DateTimeOriginal"

// WriteFields are set together, as a unit, to the target date.
var WriteFields = []string{
	"DateTimeOriginal",
	"CreateDate",
	"ModifyDate",
	"CreationDate",
	"Track:CreateDate",
	"Track:ModifyDate",
	"Media:CreateDate",
	"Media:ModifyDate",
}

var (
	// ErrUnavailable means the metadata tool could not serve the request:
	// it timed out, died, or exhausted its restart budget.
	ErrUnavailable = errors.New("metadata tool unavailable")
	// ErrReadOnly means the store cannot write metadata at all.
	ErrReadOnly = errors.New("metadata store is read-only")
)

// Store is the metadata surface the per-file workflow needs.
type Store interface {
	// ReadDate returns the primary capture date. The bool is false when the
	// file carries no usable date; that is not an error.
	ReadDate(ctx context.Context, path string) (time.Time, bool, error)
	// WriteDate sets every field in WriteFields to t, in place.
	WriteDate(ctx context.Context, path string, t time.Time) error
	Close() error
}

// ParseDate parses a capture date as written by cameras and exiftool. Only
// the first 19 characters are used, so zone suffixes such as "+03:00" and
// sub-second parts are ignored. The result is local wall-clock time.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, raw[:len(DateLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t in DateLayout, dropping sub-second precision.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
