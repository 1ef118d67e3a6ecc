package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"mediapair/internal/fileutil"
)

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

type mediaCache struct {
	dir     string
	minFree uint64
	statfs  statfsFunc
}

func newMediaCache(dir string, minFree uint64) *mediaCache {
	return &mediaCache{dir: dir, minFree: minFree, statfs: realStatfs}
}

// store copies each pair's video into the cache and sets CachePath. On error
// every copy made so far is removed.
func (c *mediaCache) store(pairs []Pair) ([]string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if err := unix.Access(c.dir, unix.W_OK); err != nil {
		return nil, fmt.Errorf("cache dir %s not writable: %w", c.dir, err)
	}

	var required uint64
	for _, p := range pairs {
		required += uint64(max(p.VideoSize, 0))
	}
	_, free, err := c.statfs(c.dir)
	if err != nil {
		return nil, fmt.Errorf("statfs: %w", err)
	}
	if free < required || free-required < c.minFree {
		return nil, fmt.Errorf("%w: need %d bytes plus %d reserved, %d free", ErrInsufficientSpace, required, c.minFree, free)
	}

	copied := make([]string, 0, len(pairs))
	for i := range pairs {
		target := filepath.Join(c.dir, pairs[i].ID+strings.ToLower(filepath.Ext(pairs[i].Name)))
		if _, err := fileutil.CopyNew(pairs[i].VideoPath, target); err != nil {
			c.discard(copied)
			return nil, fmt.Errorf("copy %q: %w", pairs[i].Name, err)
		}
		pairs[i].CachePath = target
		copied = append(copied, target)
	}
	return copied, nil
}

func (c *mediaCache) discard(paths []string) {
	for _, path := range paths {
		if path == "" || filepath.Dir(path) != filepath.Clean(c.dir) {
			continue
		}
		_ = os.Remove(path)
	}
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
