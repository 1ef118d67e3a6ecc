package testsupport

import (
	"path/filepath"
	"testing"

	"mediapair/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Library.CacheDir = filepath.Join(base, "cache")
	cfgVal.Library.MinFreeMiB = 0

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithDropDir enables the drop directory under the test base directory.
func WithDropDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.DropDir = filepath.Join(b.baseDir, "drop")
	}
}

// WithKeepCache turns on caching by default.
func WithKeepCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.KeepCache = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
