package dragdrop

import "sync/atomic"

// Lock admits at most one active gesture.
type Lock struct {
	held atomic.Bool
}

// TryAcquire takes the lock if it is free.
func (l *Lock) TryAcquire() bool {
	return l.held.CompareAndSwap(false, true)
}

// Release frees the lock.
func (l *Lock) Release() {
	l.held.Store(false)
}

// Held reports whether a gesture currently owns the lock.
func (l *Lock) Held() bool {
	return l.held.Load()
}
