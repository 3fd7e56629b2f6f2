package metadata

import (
	"errors"
	"fmt"
	"log/slog"

	"photodate/internal/logging"
)

// Mode names the metadata backend in use for a run.
type Mode string

const (
	ModeExiftool Mode = "exiftool"
	ModeNative   Mode = "native"
)

// ErrToolMissing is returned by Open when exiftool is required but cannot be
// started.
var ErrToolMissing = errors.New("exiftool is required but could not be started")

// OpenOptions selects and configures the metadata backend.
type OpenOptions struct {
	Session SessionOptions
	// Required makes a missing exiftool fatal instead of falling back to
	// the read-only native reader.
	Required bool
}

// Open starts the exiftool session, or falls back to NativeReader when
// exiftool cannot be started and is not required.
func Open(opts OpenOptions, logger *slog.Logger) (Store, Mode, error) {
	session, err := OpenSession(opts.Session, logger)
	if err == nil {
		return session, ModeExiftool, nil
	}
	if opts.Required {
		return nil, "", fmt.Errorf("%w: %v", ErrToolMissing, err)
	}
	logging.WarnWithContext(logger, "exiftool unavailable; using built-in EXIF reader", "exiftool_fallback",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "install exiftool (apt install libimage-exiftool-perl, brew install exiftool)"),
		logging.String(logging.FieldImpact, "only filesystem timestamps are written"),
	)
	return NativeReader{}, ModeNative, nil
}
