package workerpool_test

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilemo/api/pkg/workerpool"
)

// mustSubmit retries while the queue is full.
func mustSubmit(t *testing.T, pool *workerpool.Pool, task func()) {
	t.Helper()
	for {
		err := pool.Submit(task)
		if !errors.Is(err, workerpool.ErrPoolFull) {
			require.NoError(t, err)
			return
		}
		runtime.Gosched()
	}
}

func TestPool_SubmitAndExecute(t *testing.T) {
	pool := workerpool.New(4)

	const n = 100
	var count atomic.Int64
	for i := 0; i < n; i++ {
		mustSubmit(t, pool, func() { count.Add(1) })
	}

	pool.Shutdown()
	assert.EqualValues(t, n, count.Load(), "Shutdown waits for queued tasks")
}

func TestPool_ErrPoolFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})
	mustSubmit(t, pool, func() {
		close(started)
		<-blocker
	})
	<-started

	// Queue holds twice the worker count.
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)
	close(blocker)
}

func TestPool_ErrPoolClosed(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestPool_PanicRecovery(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	mustSubmit(t, pool, func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	normal := make(chan struct{})
	mustSubmit(t, pool, func() { close(normal) })

	select {
	case <-normal:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}
