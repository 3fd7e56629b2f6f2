package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExiftool(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateExiftool() error {
	if c.Exiftool.CommandTimeout < 0 {
		return errors.New("exiftool.command_timeout must be positive")
	}
	if c.Exiftool.ShutdownTimeout < 0 {
		return errors.New("exiftool.shutdown_timeout must be positive")
	}
	if c.Exiftool.MaxRestarts < 0 {
		return errors.New("exiftool.max_restarts must be zero or greater")
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.Locale == "" {
		return nil
	}
	if _, err := language.Parse(c.Report.Locale); err != nil {
		return fmt.Errorf("report.locale %q: %w", c.Report.Locale, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or greater")
	}
	return nil
}

// ReportLanguage returns the collation tag for the undated folder report.
// An empty or unparsable locale yields the root collation order.
func (c *Config) ReportLanguage() language.Tag {
	if c.Report.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(c.Report.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}
