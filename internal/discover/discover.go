// Package discover lists the files of an archive tree in a stable order.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"photodate/internal/logging"
)

// Listing is the result of walking an archive.
type Listing struct {
	Files []string
	// Skipped counts entries that are neither directories nor regular files
	// (symlinks, sockets, devices). They are never touched.
	Skipped int
	// Hidden counts dot-entries that were skipped; a hidden directory counts
	// once and is not entered.
	Hidden int
	// Unreadable lists directories that could not be read; their contents
	// are missing from Files.
	Unreadable []string
}

// Files walks root and returns every regular file below it. Entries whose
// name starts with "." are skipped, and hidden directories are not entered.
// Within a directory, entries are visited in lexical byte order, so the
// result is deterministic. Only an unreadable root is an error.
func Files(ctx context.Context, root string, logger *slog.Logger) (Listing, error) {
	logger = logging.NewComponentLogger(logger, "discover")
	var listing Listing
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logging.WarnWithContext(logger, "directory unreadable; skipped", "discover_unreadable",
				logging.Path(path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
				logging.String(logging.FieldImpact, "files below this directory are not processed"),
			)
			listing.Unreadable = append(listing.Unreadable, path)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if isHidden(d.Name()) {
			listing.Hidden++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			logger.Debug("not a regular file; skipped", logging.Path(path), logging.String("type", d.Type().String()))
			listing.Skipped++
			return nil
		}
		listing.Files = append(listing.Files, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return listing, err
		}
		return listing, fmt.Errorf("walk %s: %w", root, err)
	}
	return listing, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
