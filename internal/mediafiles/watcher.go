package mediafiles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mediapair/internal/logging"
)

// DefaultDropDebounce is how long a file must stay quiet before it is
// reported.
const DefaultDropDebounce = 300 * time.Millisecond

// DropWatcher reports files that appear in a directory.
type DropWatcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	batches  chan []Handle
	done     chan struct{}
	closeOne sync.Once
	wg       sync.WaitGroup
	logger   *slog.Logger
}

// NewDropWatcher starts watching dir. Files are emitted once they have not
// been written to for debounce.
func NewDropWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*DropWatcher, error) {
	dir = filepath.Clean(dir)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDropDebounce
	}

	dw := &DropWatcher{
		dir:      dir,
		watcher:  w,
		debounce: debounce,
		batches:  make(chan []Handle, 4),
		done:     make(chan struct{}),
		logger:   logging.NewComponentLogger(logger, "drop-watcher"),
	}
	dw.wg.Add(1)
	go dw.run()
	return dw, nil
}

// Dir is the watched directory.
func (dw *DropWatcher) Dir() string {
	return dw.dir
}

// Batches delivers groups of files that settled during the same debounce
// window. The channel is closed by Close.
func (dw *DropWatcher) Batches() <-chan []Handle {
	return dw.batches
}

// Scan returns every file currently in the drop directory.
func (dw *DropWatcher) Scan() ([]Handle, error) {
	return Pick(dw.dir)
}

// Close stops the watcher.
func (dw *DropWatcher) Close() error {
	var err error
	dw.closeOne.Do(func() {
		close(dw.done)
		err = dw.watcher.Close()
		dw.wg.Wait()
		close(dw.batches)
	})
	return err
}

func (dw *DropWatcher) run() {
	defer dw.wg.Done()

	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(dw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if filepath.Dir(event.Name) != dw.dir || hidden(filepath.Base(event.Name)) {
				continue
			}
			lastEvent[event.Name] = time.Now()

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warn("drop watcher error",
				logging.Error(err),
				logging.Event("drop_watch_error"),
			)

		case now := <-ticker.C:
			var ready []Handle
			for path, at := range lastEvent {
				if now.Sub(at) < dw.debounce {
					continue
				}
				delete(lastEvent, path)
				info, err := os.Stat(path)
				if err != nil || !info.Mode().IsRegular() {
					continue
				}
				ready = append(ready, fromInfo(path, info))
			}
			if len(ready) == 0 {
				continue
			}
			sort.Slice(ready, func(i, j int) bool { return ready[i].Path < ready[j].Path })
			dw.logger.Debug("drop batch ready", logging.Int("files", len(ready)))
			select {
			case dw.batches <- ready:
			case <-dw.done:
				return
			}
		}
	}
}
