package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateKeywords(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateKeywords() error {
	if c.Keywords.ProbeTimeoutSeconds <= 0 {
		return errors.New("keywords.probe_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if err := ValidateOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color: unsupported value %q (want auto, always, or never)", c.Output.Color)
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
	return nil
}

// ValidateOutputFormat reports whether format names a supported report format.
func ValidateOutputFormat(format string) error {
	switch format {
	case OutputPlain, OutputTable, OutputDiff, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported value %q (want plain, table, diff, or json)", format)
	}
}
