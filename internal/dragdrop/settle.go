package dragdrop

import (
	"context"
	"time"
)

// DefaultSettleTimeout bounds how long a settle waits for its completion
// signal.
const DefaultSettleTimeout = 200 * time.Millisecond

// SettleCause names what ended a settle wait.
type SettleCause int

const (
	SettleCompleted SettleCause = iota
	SettleTimedOut
	SettleCancelled
)

func (c SettleCause) String() string {
	switch c {
	case SettleCompleted:
		return "completed"
	case SettleTimedOut:
		return "timeout"
	default:
		return "cancelled"
	}
}

// AwaitSettle blocks until done is closed, the timeout elapses, or ctx ends,
// whichever happens first. A non-positive timeout uses DefaultSettleTimeout.
func AwaitSettle(ctx context.Context, done <-chan struct{}, timeout time.Duration) SettleCause {
	if timeout <= 0 {
		timeout = DefaultSettleTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return SettleCompleted
	case <-timer.C:
		return SettleTimedOut
	case <-ctx.Done():
		return SettleCancelled
	}
}
