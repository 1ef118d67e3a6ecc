package dragdrop_test

import (
	"context"
	"testing"
	"time"

	"mediapair/internal/dragdrop"
)

func TestAwaitSettleCompletion(t *testing.T) {
	done := make(chan struct{})
	close(done)
	if cause := dragdrop.AwaitSettle(context.Background(), done, time.Second); cause != dragdrop.SettleCompleted {
		t.Fatalf("cause = %s, want completed", cause)
	}
}

func TestAwaitSettleFallsBackToTimeout(t *testing.T) {
	start := time.Now()
	cause := dragdrop.AwaitSettle(context.Background(), make(chan struct{}), 20*time.Millisecond)
	if cause != dragdrop.SettleTimedOut {
		t.Fatalf("cause = %s, want timeout", cause)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("returned after %s, before the timeout", elapsed)
	}
}

func TestAwaitSettleDefaultTimeout(t *testing.T) {
	start := time.Now()
	cause := dragdrop.AwaitSettle(context.Background(), nil, 0)
	if cause != dragdrop.SettleTimedOut {
		t.Fatalf("cause = %s, want timeout", cause)
	}
	if elapsed := time.Since(start); elapsed < dragdrop.DefaultSettleTimeout {
		t.Fatalf("returned after %s, want at least %s", elapsed, dragdrop.DefaultSettleTimeout)
	}
}

func TestAwaitSettleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if cause := dragdrop.AwaitSettle(ctx, make(chan struct{}), time.Minute); cause != dragdrop.SettleCancelled {
		t.Fatalf("cause = %s, want cancelled", cause)
	}
}

func TestAwaitSettleCompletionBeatsLateTimeout(t *testing.T) {
	done := make(chan struct{})
	go func() {
		time.Sleep(5 * time.Millisecond)
		close(done)
	}()
	if cause := dragdrop.AwaitSettle(context.Background(), done, time.Second); cause != dragdrop.SettleCompleted {
		t.Fatalf("cause = %s, want completed", cause)
	}
}
