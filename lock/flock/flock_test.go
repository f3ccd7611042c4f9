package flock

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/projecteru2/nsuuid/lock"
)

func TestLock_SharedInstanceSerializes(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "x.lock"))
	ctx := context.Background()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := lock.WithLock(ctx, l, func() error {
				mu.Lock()
				holders++
				if holders > maxSeen {
					maxSeen = holders
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				holders--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("WithLock: %v", err)
			}
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
}

func TestLock_ContextCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lock")
	holder := New(path)
	ctx := context.Background()
	if err := holder.Lock(ctx); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer holder.Unlock(ctx) //nolint:errcheck

	waitCtx, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	if err := New(path).Lock(waitCtx); err == nil {
		t.Error("expected error while another handle holds the lock")
	}
}

func TestWithLock_ReleasesOnError(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "x.lock"))
	ctx := context.Background()
	boom := errors.New("boom")
	if err := lock.WithLock(ctx, l, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := lock.WithLock(ctx, l, func() error { return nil }); err != nil {
		t.Errorf("lock not released after error: %v", err)
	}
}
