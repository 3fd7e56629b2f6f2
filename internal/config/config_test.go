package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"photodate/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_STATE_HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "state", "photodate")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.LogDir != filepath.Join(wantState, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.JournalPath() != filepath.Join(wantState, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath())
	}
	if !cfg.Exiftool.Required {
		t.Fatal("expected exiftool to be required by default")
	}
	if cfg.CommandTimeout() != 60*time.Second {
		t.Fatalf("unexpected command timeout: %s", cfg.CommandTimeout())
	}
	if cfg.ShutdownTimeout() != 15*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout())
	}
	if !cfg.Apply.KeepTimeOfDay {
		t.Fatal("expected keep_time_of_day enabled by default")
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.ReportLanguage().String() != "ru" {
		t.Fatalf("unexpected report language: %s", cfg.ReportLanguage())
	}

	// Loading never creates directories; a state dir could sit inside an
	// archive until preflight says otherwise.
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir, cfg.LockDir()} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("expected %q not to be created by Load: %v", dir, err)
		}
	}
}

func TestLoadHonorsXDGStateHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StateDir != filepath.Join(stateHome, "photodate") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "photodate.toml")

	type payload struct {
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Exiftool struct {
			Binary         string `toml:"binary"`
			Required       bool   `toml:"required"`
			CommandTimeout int    `toml:"command_timeout"`
			MaxRestarts    int    `toml:"max_restarts"`
		} `toml:"exiftool"`
		Apply struct {
			KeepTimeOfDay bool `toml:"keep_time_of_day"`
		} `toml:"apply"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Exiftool.Binary = "/opt/exiftool/exiftool"
	custom.Exiftool.Required = false
	custom.Exiftool.CommandTimeout = 5
	custom.Exiftool.MaxRestarts = 0
	custom.Apply.KeepTimeOfDay = false
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.StateDir != filepath.Join(tempDir, "state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempDir, "state", "logs") {
		t.Fatalf("expected log dir to follow state dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.ExiftoolBinary() != "/opt/exiftool/exiftool" {
		t.Fatalf("unexpected exiftool binary: %q", cfg.ExiftoolBinary())
	}
	if cfg.Exiftool.Required {
		t.Fatal("expected exiftool.required override")
	}
	if cfg.CommandTimeout() != 5*time.Second {
		t.Fatalf("unexpected command timeout: %s", cfg.CommandTimeout())
	}
	if cfg.Exiftool.MaxRestarts != 0 {
		t.Fatalf("expected max_restarts 0, got %d", cfg.Exiftool.MaxRestarts)
	}
	if cfg.Apply.KeepTimeOfDay {
		t.Fatal("expected keep_time_of_day override")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging settings, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"timeout", "[exiftool]\ncommand_timeout = -1\n", "exiftool.command_timeout"},
		{"restarts", "[exiftool]\nmax_restarts = -2\n", "exiftool.max_restarts"},
		{"locale", "[report]\nlocale = \"not a locale!\"\n", "report.locale"},
		{"unknown", "[paths]\nlibrary_dir = \"/tmp\"\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "photodate.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingCustomPathUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Exiftool.Binary != "exiftool" {
		t.Fatalf("unexpected binary: %q", cfg.Exiftool.Binary)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Exiftool.CommandTimeout != defaults.Exiftool.CommandTimeout {
		t.Fatalf("sample command timeout %d differs from default %d", cfg.Exiftool.CommandTimeout, defaults.Exiftool.CommandTimeout)
	}
	if cfg.Exiftool.MaxRestarts != defaults.Exiftool.MaxRestarts {
		t.Fatalf("sample max restarts %d differs from default %d", cfg.Exiftool.MaxRestarts, defaults.Exiftool.MaxRestarts)
	}
	if cfg.Apply.KeepTimeOfDay != defaults.Apply.KeepTimeOfDay {
		t.Fatal("sample keep_time_of_day differs from default")
	}
}
