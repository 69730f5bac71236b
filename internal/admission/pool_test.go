package admission

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		pool := NewPool(size)
		assert.Equal(t, 1, pool.Size(), "NewPool(%d)", size)
		_ = pool.Close()
	}
}

func TestPool_Size(t *testing.T) {
	for _, size := range []int{1, 2, 5} {
		pool := NewPool(size)
		assert.Equal(t, size, pool.Size())
		assert.Equal(t, size, pool.Available())
		_ = pool.Close()
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	pool := NewPool(2)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()

	s1, err := pool.Acquire(ctx)
	require.NoError(t, err)
	s2, err := pool.Acquire(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID(), s2.ID(), "expected distinct slots")

	// Third acquire blocks until the deadline.
	ctx3, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pool.Release(s1)

	s3, err := pool.Acquire(ctx)
	require.NoError(t, err)

	pool.Release(s2)
	pool.Release(s3)

	assert.Equal(t, 2, pool.Available())
}

func TestPool_ReleaseNil(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	assert.NotPanics(t, func() { pool.Release(nil) })
}

func TestPool_ReleaseForeignSlotWhenFull(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	pool.Release(&Slot{id: 99})
	assert.Equal(t, 1, pool.Available())
}

func TestPool_Close_Idempotent(t *testing.T) {
	pool := NewPool(2)

	assert.NoError(t, pool.Close())
	assert.NoError(t, pool.Close())
}

func TestPool_AcquireAfterClose(t *testing.T) {
	pool := NewPool(2)
	_ = pool.Close()

	_, err := pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_ReleaseAfterClose(t *testing.T) {
	pool := NewPool(1)

	slot, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, pool.Close())

	assert.NotPanics(t, func() { pool.Release(slot) })
}

func TestPool_AcquireContextCancellation(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()
	s1, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer pool.Release(s1)

	cancelledCtx, cancel := context.WithCancel(ctx)
	cancel()

	_, err = pool.Acquire(cancelledCtx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_CancelledContextWithFreeSlot(t *testing.T) {
	pool := NewPool(1)
	defer func() { _ = pool.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, pool.Available())
}

func TestPool_ConcurrentAccess(t *testing.T) {
	poolSize := 3
	pool := NewPool(poolSize)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()
	numGoroutines := 10
	numIterations := 5

	var wg sync.WaitGroup
	var inUse, maxInUse, successCount int64

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				slot, err := pool.Acquire(ctx)
				if !assert.NoError(t, err) {
					return
				}

				n := atomic.AddInt64(&inUse, 1)
				for {
					m := atomic.LoadInt64(&maxInUse)
					if n <= m || atomic.CompareAndSwapInt64(&maxInUse, m, n) {
						break
					}
				}

				time.Sleep(time.Millisecond)

				atomic.AddInt64(&inUse, -1)
				pool.Release(slot)
				atomic.AddInt64(&successCount, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(numGoroutines*numIterations), successCount)
	assert.LessOrEqual(t, maxInUse, int64(poolSize), "more concurrent holders than slots")
}
