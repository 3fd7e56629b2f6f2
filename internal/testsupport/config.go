package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"photodate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose state and log directories live in a
// unique temp directory, outside any archive the test builds.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "state", "logs")
	cfgVal.Logging.RetentionDays = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithExiftoolOptional lets runs fall back to the native reader.
func WithExiftoolOptional() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exiftool.Required = false
	}
}

// WithExiftoolBinary points the config at a specific exiftool binary.
func WithExiftoolBinary(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exiftool.Binary = path
	}
}

// WithJournal toggles the run journal.
func WithJournal(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = enabled
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, exiftool is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"exiftool"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
