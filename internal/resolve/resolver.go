package resolve

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"photodate/internal/datename"
	"photodate/internal/logging"
)

// SourceKind records where a resolved date came from.
type SourceKind string

const (
	SourceFile   SourceKind = "file"
	SourceFolder SourceKind = "folder"
)

// Resolution is the date chosen for one file.
type Resolution struct {
	Date       time.Time
	SourceName string
	SourceKind SourceKind
	Precision  datename.Precision
	RangeEnd   time.Time
}

// Resolver resolves dates for files below one archive root.
type Resolver struct {
	root   string
	logger *slog.Logger
}

// New constructs a Resolver. root is cleaned; a nil logger discards output.
func New(root string, logger *slog.Logger) *Resolver {
	return &Resolver{
		root:   filepath.Clean(root),
		logger: logging.NewComponentLogger(logger, "resolve"),
	}
}

// Root returns the archive root the resolver was built with.
func (r *Resolver) Root() string {
	return r.root
}

// Ancestor walks from the file's parent directory upward and returns the
// token of the nearest directory whose name carries a date, together with
// that directory's name. The archive root is tested too; the walk stops after
// it or at the filesystem root.
func (r *Resolver) Ancestor(filePath string) (datename.Token, string, bool) {
	dir := filepath.Dir(filepath.Clean(filePath))
	for {
		name := filepath.Base(dir)
		if token, ok := datename.Parse(name); ok {
			return token, name, true
		}
		if dir == r.root {
			return datename.Token{}, "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return datename.Token{}, "", false
		}
		dir = parent
	}
}

// Select applies the default priority: the file's own stem first, then the
// nearest dated ancestor. The bool is false when neither carries a date.
func (r *Resolver) Select(filePath string) (Resolution, bool) {
	stem := Stem(filePath)
	if token, ok := datename.Parse(stem); ok {
		return resolutionFrom(token, stem, SourceFile), true
	}
	if token, name, ok := r.Ancestor(filePath); ok {
		return resolutionFrom(token, name, SourceFolder), true
	}
	r.logger.Debug("no date in file or folder names", logging.Path(r.Rel(filePath)))
	return Resolution{}, false
}

// Rel returns path relative to the archive root, or path itself when it is
// not below the root.
func (r *Resolver) Rel(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Stem returns the base name of path without its final extension. Dotfiles
// such as ".jpg" keep their full name.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

func resolutionFrom(token datename.Token, name string, kind SourceKind) Resolution {
	return Resolution{
		Date:       token.Value,
		SourceName: name,
		SourceKind: kind,
		Precision:  token.Precision,
		RangeEnd:   token.RangeEnd,
	}
}
