package booking

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// itemLocks serializes state-changing operations per item. Acquisition is
// bounded: callers that cannot get the lock within the wait window get
// ErrConcurrency instead of blocking indefinitely.
type itemLocks struct {
	mu   sync.Mutex
	sems map[int64]*semaphore.Weighted
	wait time.Duration
}

func newItemLocks(wait time.Duration) *itemLocks {
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &itemLocks{
		sems: make(map[int64]*semaphore.Weighted),
		wait: wait,
	}
}

func (l *itemLocks) sem(itemID int64) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sems[itemID]
	if !ok {
		s = semaphore.NewWeighted(1)
		l.sems[itemID] = s
	}
	return s
}

// acquire takes the per-item lock, honoring both the caller's context and
// the bounded wait. The returned release func is safe to call exactly once
// and must be called on every exit path.
func (l *itemLocks) acquire(ctx context.Context, itemID int64) (func(), error) {
	s := l.sem(itemID)

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	if err := s.Acquire(waitCtx, 1); err != nil {
		return nil, ErrConcurrency
	}
	return func() { s.Release(1) }, nil
}
