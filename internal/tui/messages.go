package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mediapair/internal/dragdrop"
	"mediapair/internal/mediafiles"
	"mediapair/internal/pending"
)

// settleFrameMsg advances the settle animation of a gesture by one frame.
type settleFrameMsg struct {
	gestureID string
}

// settledMsg reports that a gesture finished settling.
type settledMsg struct {
	gestureID string
	cause     dragdrop.SettleCause
}

type bufferChangedMsg struct{}

type dropBatchMsg struct {
	handles []mediafiles.Handle
}

type confirmRequestMsg struct {
	request confirmRequest
}

type commitDoneMsg struct {
	outcome pending.Outcome
	err     error
}

func frameCmd(id string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return settleFrameMsg{gestureID: id}
	})
}

func awaitSettleCmd(ctx context.Context, id string, done <-chan struct{}, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		return settledMsg{gestureID: id, cause: dragdrop.AwaitSettle(ctx, done, timeout)}
	}
}

func waitForChange(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return bufferChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForDrop(ctx context.Context, watcher *mediafiles.DropWatcher) tea.Cmd {
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case batch, ok := <-watcher.Batches():
			if !ok {
				return nil
			}
			return dropBatchMsg{handles: batch}
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForConfirm(ctx context.Context, requests <-chan confirmRequest) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-requests:
			return confirmRequestMsg{request: req}
		case <-ctx.Done():
			return nil
		}
	}
}

func commitCmd(ctx context.Context, buffer *pending.Buffer, keepCache bool) tea.Cmd {
	return func() tea.Msg {
		outcome, err := buffer.Commit(ctx, keepCache)
		return commitDoneMsg{outcome: outcome, err: err}
	}
}
