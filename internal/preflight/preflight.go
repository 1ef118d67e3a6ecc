package preflight

import (
	"context"

	"mediapair/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for cfg. The drop directory is only
// checked when configured, and free space only when the cache is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Paths.DropDir != "" {
		results = append(results, CheckDirectoryAccess("Drop directory", cfg.Paths.DropDir))
	}
	if cfg.Library.KeepCache {
		results = append(results,
			CheckDirectoryAccess("Cache directory", cfg.Library.CacheDir),
			CheckFreeSpace("Cache free space", cfg.Library.CacheDir, cfg.MinFreeBytes()),
		)
	}
	results = append(results, CheckLibrary(ctx, cfg))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
