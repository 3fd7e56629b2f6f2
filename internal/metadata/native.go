package metadata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// NativeReader reads DateTimeOriginal from JPEG and TIFF files without an
// external tool. Other formats report no date. It never writes.
type NativeReader struct{}

var nativeExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// Supports reports whether path has an extension the reader can decode.
func (NativeReader) Supports(path string) bool {
	return nativeExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReadDate decodes the EXIF block of path. Files without EXIF, or with a
// damaged one, report no date.
func (r NativeReader) ReadDate(ctx context.Context, path string) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}
	if !r.Supports(path) {
		return time.Time{}, false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return time.Time{}, false, nil
	}
	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, false, nil
	}
	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, false, nil
	}
	t, ok := ParseDate(raw)
	return t, ok, nil
}

// WriteDate always fails with ErrReadOnly.
func (NativeReader) WriteDate(context.Context, string, time.Time) error {
	return ErrReadOnly
}

// Close is a no-op.
func (NativeReader) Close() error { return nil }
