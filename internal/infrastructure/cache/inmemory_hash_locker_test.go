package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryHashLocker_Acquire(t *testing.T) {
	ctx := context.Background()

	t.Run("same key is mutually exclusive", func(t *testing.T) {
		locker := NewInMemoryHashLocker(time.Second)

		var inside, maxInside int32
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := locker.Acquire(ctx, "202cb962ac59075b964b07152d234b70")
				require.NoError(t, err)
				defer release()

				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxInside)
		assert.Equal(t, 0, locker.Len(), "entries are dropped once released")
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		locker := NewInMemoryHashLocker(50 * time.Millisecond)

		releaseA, err := locker.Acquire(ctx, "a")
		require.NoError(t, err)
		defer releaseA()

		releaseB, err := locker.Acquire(ctx, "b")
		require.NoError(t, err)
		releaseB()
	})

	t.Run("times out while held", func(t *testing.T) {
		locker := NewInMemoryHashLocker(20 * time.Millisecond)

		release, err := locker.Acquire(ctx, "held")
		require.NoError(t, err)
		defer release()

		_, err = locker.Acquire(ctx, "held")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrLockTimeout)
		assert.Equal(t, 1, locker.Len())
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		locker := NewInMemoryHashLocker(time.Second)

		release, err := locker.Acquire(ctx, "held")
		require.NoError(t, err)
		defer release()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = locker.Acquire(cctx, "held")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, shared.ErrLockTimeout)
		assert.Equal(t, 1, locker.Len(), "the waiter's reference is dropped")
	})

	t.Run("request deadline shorter than the wait budget", func(t *testing.T) {
		locker := NewInMemoryHashLocker(time.Second)

		release, err := locker.Acquire(ctx, "held")
		require.NoError(t, err)
		defer release()

		dctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		_, err = locker.Acquire(dctx, "held")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorIs(t, err, shared.ErrLockTimeout)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		locker := NewInMemoryHashLocker(time.Second)

		release, err := locker.Acquire(ctx, "k")
		require.NoError(t, err)
		release()
		release()

		again, err := locker.Acquire(ctx, "k")
		require.NoError(t, err)
		again()
		assert.Equal(t, 0, locker.Len())
	})

	t.Run("non-positive wait uses default", func(t *testing.T) {
		locker := NewInMemoryHashLocker(0)
		assert.Equal(t, shared.DefaultLockConfig().Wait, locker.wait)
		assert.NoError(t, locker.Close())
	})
}
