package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultConfigFile = "~/.config/photodate/config.toml"
	projectConfigFile = "photodate.toml"
)

// Paths contains the directories photodate keeps its own state in. None of
// them may live inside an archive being processed.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Exiftool contains settings for the external metadata tool.
type Exiftool struct {
	Binary          string `toml:"binary"`
	Required        bool   `toml:"required"`
	CommandTimeout  int    `toml:"command_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	MaxRestarts     int    `toml:"max_restarts"`
}

// Apply contains settings that shape the apply gate.
type Apply struct {
	// KeepTimeOfDay accepts a timestamp already on the target's calendar day
	// when the target only comes from a name token.
	KeepTimeOfDay bool `toml:"keep_time_of_day"`
}

// Journal contains settings for the run journal.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Report contains settings for the end-of-run report.
type Report struct {
	// Locale selects the collation used to sort folder names, e.g. "ru".
	Locale string `toml:"locale"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for photodate.
//
// Configuration sections:
//   - Paths: state and log directories
//   - Exiftool: metadata tool binary, timeouts and restart budget
//   - Apply: idempotent gate tuning
//   - Journal: applied-run history
//   - Report: undated folder listing
//   - Logging: log format, level, and retention
type Config struct {
	Paths    Paths    `toml:"paths"`
	Exiftool Exiftool `toml:"exiftool"`
	Apply    Apply    `toml:"apply"`
	Journal  Journal  `toml:"journal"`
	Report   Report   `toml:"report"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigFile)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigFile)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// JournalPath returns the location of the run journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// LockDir returns the directory holding per-archive lock files.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// ExiftoolBinary returns the configured exiftool executable.
func (c *Config) ExiftoolBinary() string {
	return c.Exiftool.Binary
}

// CommandTimeout returns the per-command exiftool timeout.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Exiftool.CommandTimeout) * time.Second
}

// ShutdownTimeout returns how long exiftool may take to honor the stay-open
// termination request.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Exiftool.ShutdownTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
