package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExiftool()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExiftool() {
	c.Exiftool.Binary = strings.TrimSpace(c.Exiftool.Binary)
	if c.Exiftool.Binary == "" {
		c.Exiftool.Binary = defaultExiftoolBinary
	}
	if strings.HasPrefix(c.Exiftool.Binary, "~") {
		if expanded, err := expandPath(c.Exiftool.Binary); err == nil {
			c.Exiftool.Binary = expanded
		}
	}
	if c.Exiftool.CommandTimeout == 0 {
		c.Exiftool.CommandTimeout = defaultExiftoolCommandTimeout
	}
	if c.Exiftool.ShutdownTimeout == 0 {
		c.Exiftool.ShutdownTimeout = defaultExiftoolShutdownTimeout
	}
}

func (c *Config) normalizeReport() {
	c.Report.Locale = strings.TrimSpace(c.Report.Locale)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
