package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeWatch(); err != nil {
		return err
	}
	c.normalizeUI()
	return c.normalizeLogging()
}

func (c *Config) normalizeWatch() error {
	if strings.TrimSpace(c.Watch.PresenceFile) == "" {
		if value, ok := os.LookupEnv("WAITFORFILE_PRESENCE_FILE"); ok {
			c.Watch.PresenceFile = value
		}
	}
	if strings.TrimSpace(c.Watch.Command) == "" {
		if value, ok := os.LookupEnv("WAITFORFILE_COMMAND"); ok {
			c.Watch.Command = value
		}
	}

	var err error
	if c.Watch.PresenceFile, err = expandPath(strings.TrimSpace(c.Watch.PresenceFile)); err != nil {
		return fmt.Errorf("watch.presence_file: %w", err)
	}
	if c.Watch.LockDir, err = expandPath(strings.TrimSpace(c.Watch.LockDir)); err != nil {
		return fmt.Errorf("watch.lock_dir: %w", err)
	}
	c.Watch.Command = strings.TrimSpace(c.Watch.Command)
	c.Watch.Icon = strings.TrimSpace(c.Watch.Icon)
	c.Watch.Shell = strings.TrimSpace(c.Watch.Shell)
	if c.Watch.Shell == "" {
		c.Watch.Shell = defaultShell
	}
	return nil
}

func (c *Config) normalizeUI() {
	c.UI.Mode = strings.ToLower(strings.TrimSpace(c.UI.Mode))
	if c.UI.Mode == "" {
		c.UI.Mode = defaultUIMode
	}
	c.UI.Title = strings.TrimSpace(c.UI.Title)
	if c.UI.Title == "" {
		c.UI.Title = defaultUITitle
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
