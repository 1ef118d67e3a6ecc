package mediafiles

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// Pick resolves paths into file handles. Directories are walked recursively,
// following symlinks and skipping hidden entries. The result is ordered by
// path. ErrNoMedia is returned when nothing usable is found.
func Pick(paths ...string) ([]Handle, error) {
	var handles []Handle
	seen := make(map[string]struct{})
	add := func(h Handle) {
		if _, ok := seen[h.Path]; ok {
			return
		}
		seen[h.Path] = struct{}{}
		handles = append(handles, h)
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		if !info.IsDir() {
			if info.Mode().IsRegular() {
				add(fromInfo(abs, info))
			}
			continue
		}
		found, err := walkDir(abs)
		if err != nil {
			return nil, err
		}
		for _, h := range found {
			add(h)
		}
	}

	if len(handles) == 0 {
		return nil, ErrNoMedia
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i].Path < handles[j].Path })
	return handles, nil
}

func walkDir(root string) ([]Handle, error) {
	var (
		mu    sync.Mutex
		found []Handle
	)
	conf := &fastwalk.Config{Follow: true}
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if hidden(d.Name()) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		h := fromInfo(path, info)
		mu.Lock()
		found = append(found, h)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", root, err)
	}
	return found, nil
}
