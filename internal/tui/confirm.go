package tui

import "context"

type confirmRequest struct {
	message string
	reply   chan bool
}

// modalConfirmer answers overwrite prompts through the UI. Confirm blocks the
// committing goroutine until the model replies.
type modalConfirmer struct {
	requests chan confirmRequest
}

func newModalConfirmer() *modalConfirmer {
	return &modalConfirmer{requests: make(chan confirmRequest)}
}

func (c *modalConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	req := confirmRequest{message: message, reply: make(chan bool, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
