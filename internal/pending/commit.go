package pending

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"mediapair/internal/logging"
	"mediapair/internal/mediafiles"
)

// ErrCommitInProgress is returned when Commit is called while another commit
// is still running.
var ErrCommitInProgress = errors.New("commit already in progress")

// ErrNoVideos reports a commit of a buffer that holds subtitles but no
// video to pair them with.
var ErrNoVideos = errors.New("no videos to pair")

// Persister stores committed pairs.
type Persister interface {
	CheckExisting(ctx context.Context, names []string) ([]string, error)
	PersistPairs(ctx context.Context, videos, subtitles []mediafiles.Handle, keepCache bool) error
	OnListChanged() (<-chan struct{}, func())
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// AlwaysConfirm accepts every overwrite.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Outcome describes how a commit ended without error.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeDeclined
	OutcomeCommitted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeDeclined:
		return "declined"
	case OutcomeCommitted:
		return "committed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Commit persists the current lists. Committed items are removed only after
// the write succeeds. Items added while the commit runs stay in the buffer.
func (b *Buffer) Commit(ctx context.Context, keepCache bool) (Outcome, error) {
	b.mu.Lock()
	if len(b.videos)+len(b.subtitles) == 0 {
		b.mu.Unlock()
		return OutcomeEmpty, nil
	}
	if len(b.videos) == 0 {
		b.mu.Unlock()
		return OutcomeEmpty, ErrNoVideos
	}
	if b.processing {
		b.mu.Unlock()
		return OutcomeEmpty, ErrCommitInProgress
	}
	b.processing = true
	videos, subtitles := slices.Clone(b.videos), slices.Clone(b.subtitles)
	confirmer := b.confirmer
	b.mu.Unlock()
	b.notify()

	defer func() {
		b.mu.Lock()
		b.processing = false
		b.mu.Unlock()
		b.notify()
	}()

	ctx = logging.WithCommitID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, b.logger)

	existing, err := b.persister.CheckExisting(ctx, names(videos))
	if err != nil {
		return OutcomeEmpty, fmt.Errorf("check existing: %w", err)
	}
	if len(existing) > 0 {
		accepted := false
		if confirmer != nil {
			accepted, err = confirmer.Confirm(ctx, overwriteMessage(existing))
			if err != nil {
				return OutcomeEmpty, fmt.Errorf("confirm overwrite: %w", err)
			}
		}
		if !accepted {
			logger.Info("commit declined",
				logging.Int("collisions", len(existing)),
				logging.Event("commit_declined"),
			)
			return OutcomeDeclined, nil
		}
	}

	changed, cancel := b.persister.OnListChanged()
	defer cancel()

	if err := b.persister.PersistPairs(ctx, handles(videos), handles(subtitles), keepCache); err != nil {
		logging.Fail(logger, "commit_failed", "commit failed",
			logging.Error(err),
			logging.Hint("pending files were kept; fix the cause and commit again"),
		)
		return OutcomeEmpty, fmt.Errorf("persist pairs: %w", err)
	}

	b.removeCommitted(videos, subtitles)

	select {
	case <-changed:
	case <-ctx.Done():
		logger.Debug("stopped waiting for list change", logging.Error(ctx.Err()))
	}
	logger.Info("commit finished",
		logging.Int("videos", len(videos)),
		logging.Int("subtitles", len(subtitles)),
		logging.Bool("keep_cache", keepCache),
		logging.Event("commit_finished"),
	)
	return OutcomeCommitted, nil
}

func (b *Buffer) removeCommitted(videos, subtitles []Item) {
	b.mu.Lock()
	b.videos = without(b.videos, videos)
	b.subtitles = without(b.subtitles, subtitles)
	b.mu.Unlock()
	b.notify()
}

func without(list, committed []Item) []Item {
	if len(committed) == 0 {
		return list
	}
	gone := make(map[string]struct{}, len(committed))
	for _, item := range committed {
		gone[item.Name] = struct{}{}
	}
	var kept []Item
	for _, item := range list {
		if _, ok := gone[item.Name]; !ok {
			kept = append(kept, item)
		}
	}
	return kept
}

func overwriteMessage(existing []string) string {
	const shown = 5
	list := existing
	suffix := ""
	if len(list) > shown {
		suffix = fmt.Sprintf(" and %d more", len(list)-shown)
		list = list[:shown]
	}
	noun := "item already exists"
	if len(existing) > 1 {
		noun = "items already exist"
	}
	return fmt.Sprintf("%d %s in the library: %s%s. Overwrite?", len(existing), noun, strings.Join(list, ", "), suffix)
}
