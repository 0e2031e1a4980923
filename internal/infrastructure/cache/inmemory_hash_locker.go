package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bookstore/backend/internal/domain/shared"
)

type keyedLock struct {
	sem  chan struct{}
	refs int
}

// InMemoryHashLocker implements HashLocker with one semaphore per key.
// Entries are reference counted and dropped once nobody holds or waits on them.
// Suitable for single-instance deployments and tests.
type InMemoryHashLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
	wait  time.Duration
}

// NewInMemoryHashLocker creates an in-memory locker; wait bounds how long Acquire blocks
func NewInMemoryHashLocker(wait time.Duration) *InMemoryHashLocker {
	if wait <= 0 {
		wait = shared.DefaultLockConfig().Wait
	}
	return &InMemoryHashLocker{
		locks: make(map[string]*keyedLock),
		wait:  wait,
	}
}

// Acquire blocks until key is held, ctx is done, or the wait budget is spent
func (l *InMemoryHashLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyedLock{sem: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case kl.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, kl)
		return nil, fmt.Errorf("acquire lock %s: %w: %w", key, shared.ErrLockTimeout, ctx.Err())
	case <-timer.C:
		l.unref(key, kl)
		return nil, fmt.Errorf("acquire lock %s: %w", key, shared.ErrLockTimeout)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.sem
			l.unref(key, kl)
		})
	}, nil
}

func (l *InMemoryHashLocker) unref(key string, kl *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// Len returns the number of keys currently held or waited on
func (l *InMemoryHashLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Close is a no-op; held locks stay valid until released
func (l *InMemoryHashLocker) Close() error {
	return nil
}

var _ shared.HashLocker = (*InMemoryHashLocker)(nil)
