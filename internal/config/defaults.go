package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultExiftoolBinary          = "exiftool"
	defaultExiftoolCommandTimeout  = 60
	defaultExiftoolShutdownTimeout = 15
	defaultExiftoolMaxRestarts     = 3
	defaultReportLocale            = "ru"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultLogRetentionDays        = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	stateDir := defaultStateDir()
	return Config{
		Paths: Paths{
			StateDir: stateDir,
			LogDir:   filepath.Join(stateDir, "logs"),
		},
		Exiftool: Exiftool{
			Binary:          defaultExiftoolBinary,
			Required:        true,
			CommandTimeout:  defaultExiftoolCommandTimeout,
			ShutdownTimeout: defaultExiftoolShutdownTimeout,
			MaxRestarts:     defaultExiftoolMaxRestarts,
		},
		Apply: Apply{
			KeepTimeOfDay: true,
		},
		Journal: Journal{
			Enabled: true,
		},
		Report: Report{
			Locale: defaultReportLocale,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "photodate")
	}
	return "~/.local/state/photodate"
}
