package pending

import (
	"log/slog"
	"slices"
	"sync"

	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
	"mediapair/internal/reorder"
)

// Buffer is the pair of pending lists. It is safe for concurrent use.
type Buffer struct {
	mu         sync.Mutex
	videos     []Item
	subtitles  []Item
	processing bool

	persister Persister
	confirmer Confirmer
	logger    *slog.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewBuffer returns an empty buffer committing through persister. A nil
// confirmer declines every overwrite.
func NewBuffer(persister Persister, confirmer Confirmer, logger *slog.Logger) *Buffer {
	return &Buffer{
		persister: persister,
		confirmer: confirmer,
		logger:    logging.NewComponentLogger(logger, "pending"),
		subs:      make(map[int]func()),
	}
}

// SetConfirmer replaces the overwrite confirmer.
func (b *Buffer) SetConfirmer(c Confirmer) {
	b.mu.Lock()
	b.confirmer = c
	b.mu.Unlock()
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (b *Buffer) Subscribe(fn func()) func() {
	b.subMu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	b.subMu.Unlock()

	return func() {
		b.subMu.Lock()
		delete(b.subs, id)
		b.subMu.Unlock()
	}
}

func (b *Buffer) notify() {
	b.subMu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (b *Buffer) list(kind mediafiles.Kind) *[]Item {
	if kind == mediafiles.KindSubtitle {
		return &b.subtitles
	}
	return &b.videos
}

// AddFiles appends items to each list, skipping names already present. It
// returns the number of items actually added.
func (b *Buffer) AddFiles(videos, subtitles []Item) int {
	b.mu.Lock()
	beforeV, beforeS := len(b.videos), len(b.subtitles)
	b.videos = dedupe(append(b.videos, videos...))
	b.subtitles = dedupe(append(b.subtitles, subtitles...))
	added := len(b.videos) - beforeV + len(b.subtitles) - beforeS
	b.mu.Unlock()

	if added > 0 {
		b.logger.Debug("files added",
			logging.Int("added", added),
			logging.Int("skipped", len(videos)+len(subtitles)-added),
		)
		b.notify()
	}
	return added
}

// AddHandles classifies handles by extension and adds them.
func (b *Buffer) AddHandles(hs []mediafiles.Handle) int {
	videos, subtitles := mediafiles.Classify(hs)
	return b.AddFiles(FromHandles(videos), FromHandles(subtitles))
}

// RemoveByName deletes the named item from the list of kind.
func (b *Buffer) RemoveByName(kind mediafiles.Kind, name string) bool {
	b.mu.Lock()
	list := b.list(kind)
	idx := slices.IndexFunc(*list, func(item Item) bool { return item.Name == name })
	if idx >= 0 {
		*list = slices.Delete(*list, idx, idx+1)
	}
	b.mu.Unlock()

	if idx < 0 {
		return false
	}
	b.notify()
	return true
}

// Reorder moves the item at selected to hovered within the list of kind.
func (b *Buffer) Reorder(kind mediafiles.Kind, selected, hovered int) bool {
	b.mu.Lock()
	moved := reorder.Move(*b.list(kind), selected, hovered)
	b.mu.Unlock()

	if moved {
		b.logger.Debug("list reordered",
			logging.List(kind.String()),
			logging.Int("selected", selected),
			logging.Int("hovered", hovered),
		)
		b.notify()
	}
	return moved
}

// Reset empties both lists.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.videos = nil
	b.subtitles = nil
	b.mu.Unlock()
	b.notify()
}

// Videos returns a copy of the video list.
func (b *Buffer) Videos() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.videos)
}

// Subtitles returns a copy of the subtitle list.
func (b *Buffer) Subtitles() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.subtitles)
}

// Items returns a copy of the list of kind.
func (b *Buffer) Items(kind mediafiles.Kind) []Item {
	if kind == mediafiles.KindSubtitle {
		return b.Subtitles()
	}
	return b.Videos()
}

// Len is the number of items across both lists.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.videos) + len(b.subtitles)
}

// Processing reports whether a commit is running.
func (b *Buffer) Processing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.processing
}
