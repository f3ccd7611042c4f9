package flock

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"github.com/projecteru2/nsuuid/lock"
)

const retryDelay = 50 * time.Millisecond

// compile-time interface check.
var _ lock.Locker = (*Lock)(nil)

// Lock provides cross-process mutual exclusion using flock(2) via gofrs/flock.
// Goroutines sharing one Lock are serialized as well: gofrs/flock treats a
// second TryLock on the same handle as already held.
// Lock files are long-lived and never deleted after use.
type Lock struct {
	fl  *flock.Flock
	sem chan struct{}
}

// New creates a new Lock for the given path.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path), sem: make(chan struct{}, 1)}
}

// Lock acquires an exclusive flock. Blocks until the lock is available
// or the context is cancelled.
func (l *Lock) Lock(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("acquire flock %s: %w", l.fl.Path(), ctx.Err())
	}
	locked, err := l.fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		<-l.sem
		return fmt.Errorf("acquire flock %s: %w", l.fl.Path(), err)
	}
	if !locked {
		<-l.sem
		return fmt.Errorf("failed to acquire flock %s: context done", l.fl.Path())
	}
	return nil
}

// Unlock releases the flock.
func (l *Lock) Unlock(_ context.Context) error {
	defer func() { <-l.sem }()
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release flock %s: %w", l.fl.Path(), err)
	}
	return nil
}
