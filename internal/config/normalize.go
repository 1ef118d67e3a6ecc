package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	c.normalizeReorder()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.DropDir = strings.TrimSpace(c.Paths.DropDir)
	if c.Paths.DropDir == "" {
		if value, ok := os.LookupEnv("MEDIAPAIR_DROP_DIR"); ok {
			c.Paths.DropDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DropDir, err = expandPath(c.Paths.DropDir); err != nil {
		return fmt.Errorf("paths.drop_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() error {
	var err error
	if strings.TrimSpace(c.Library.CacheDir) == "" {
		c.Library.CacheDir = filepath.Join(c.Paths.DataDir, defaultCacheDirName)
	}
	if c.Library.CacheDir, err = expandPath(c.Library.CacheDir); err != nil {
		return fmt.Errorf("library.cache_dir: %w", err)
	}
	if c.Library.MinFreeMiB < 0 {
		c.Library.MinFreeMiB = 0
	}
	return nil
}

func (c *Config) normalizeReorder() {
	if c.Reorder.SettleTimeoutMS <= 0 {
		c.Reorder.SettleTimeoutMS = defaultSettleTimeoutMS
	}
	if c.Reorder.SettleFrames <= 0 {
		c.Reorder.SettleFrames = defaultSettleFrames
	}
	c.Reorder.Input = strings.ToLower(strings.TrimSpace(c.Reorder.Input))
	if c.Reorder.Input == "" {
		c.Reorder.Input = defaultInput
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
