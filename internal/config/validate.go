package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateReorder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.DropDir != "" && c.Paths.DropDir == c.Library.CacheDir {
		return errors.New("paths.drop_dir must differ from library.cache_dir")
	}
	return nil
}

func (c *Config) validateReorder() error {
	if c.Reorder.RowHeight <= 0 {
		return fmt.Errorf("reorder.row_height must be positive (got %d)", c.Reorder.RowHeight)
	}
	if c.Reorder.RowMargin < 0 {
		return fmt.Errorf("reorder.row_margin must not be negative (got %d)", c.Reorder.RowMargin)
	}
	if c.Reorder.SettleTimeoutMS <= 0 {
		return fmt.Errorf("reorder.settle_timeout_ms must be positive (got %d)", c.Reorder.SettleTimeoutMS)
	}
	if c.Reorder.SettleFrames <= 0 {
		return fmt.Errorf("reorder.settle_frames must be positive (got %d)", c.Reorder.SettleFrames)
	}
	switch c.Reorder.Input {
	case "mouse", "touch":
	default:
		return fmt.Errorf("reorder.input: unsupported value %q", c.Reorder.Input)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
