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

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	// DropDir is watched for new files while the interactive buffer runs.
	// Empty disables the watcher.
	DropDir string `toml:"drop_dir"`
}

// Library contains configuration for persisted pairs.
type Library struct {
	// KeepCache is the default for copying videos into CacheDir on commit.
	KeepCache  bool   `toml:"keep_cache"`
	CacheDir   string `toml:"cache_dir"`
	MinFreeMiB int    `toml:"min_free_mib"`
}

// Reorder contains configuration for the drag-to-reorder engine.
type Reorder struct {
	// RowHeight and RowMargin are measured in terminal cells.
	RowHeight       int    `toml:"row_height"`
	RowMargin       int    `toml:"row_margin"`
	SettleTimeoutMS int    `toml:"settle_timeout_ms"`
	SettleFrames    int    `toml:"settle_frames"`
	Input           string `toml:"input"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mediapair.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and drop directories
//   - Library: media cache location and free-space floor
//   - Reorder: row metrics, settle timing, and input modality
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Library Library `toml:"library"`
	Reorder Reorder `toml:"reorder"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
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
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
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
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mediapair.toml")
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

// EnsureDirectories creates the data, log, and cache directories. The drop
// directory is created on a best-effort basis so a missing mount does not
// prevent the buffer from starting.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Library.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.DropDir) != "" {
		_ = os.MkdirAll(c.Paths.DropDir, 0o755)
	}
	return nil
}

// DatabasePath is the location of the library database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "library.db")
}

// CommitLockPath is the file lock serialising commits across processes.
func (c *Config) CommitLockPath() string {
	return filepath.Join(c.Paths.DataDir, "commit.lock")
}

// LogFilePath is where the interactive buffer writes its log.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "mediapair.log")
}

// SettleTimeout is the fallback for a settle animation that never reports
// completion.
func (c *Config) SettleTimeout() time.Duration {
	return time.Duration(c.Reorder.SettleTimeoutMS) * time.Millisecond
}

// MinFreeBytes is the free-space floor enforced before caching a video.
func (c *Config) MinFreeBytes() uint64 {
	if c.Library.MinFreeMiB <= 0 {
		return 0
	}
	return uint64(c.Library.MinFreeMiB) << 20
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
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
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

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
