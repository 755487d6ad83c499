package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable apart from the required watch
// fields, which ValidateWatch covers.
func (c *Config) Validate() error {
	if err := c.validateUI(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Watch.Shell == "" {
		return errors.New("watch.shell must be set")
	}
	return nil
}

// ValidateWatch reports a missing presence file or command.
func (c *Config) ValidateWatch() error {
	if strings.TrimSpace(c.Watch.PresenceFile) == "" {
		return errors.New("watch.presence_file is required (set it in the config file or pass --presence-file)")
	}
	if strings.TrimSpace(c.Watch.Command) == "" {
		return errors.New("watch.command is required (set it in the config file or pass --command)")
	}
	return nil
}

func (c *Config) validateUI() error {
	switch c.UI.Mode {
	case UIModeAuto, UIModeTUI, UIModeHeadless:
		return nil
	default:
		return fmt.Errorf("ui.mode: unsupported value %q (expected auto, tui, or headless)", c.UI.Mode)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
