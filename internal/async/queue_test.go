package async

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolProcessesAllJobsIntoOwnSlots(t *testing.T) {
	const n = 20
	results := make([]string, n)

	pool := NewPool(func(_ context.Context, job Job) {
		results[job.Index] = job.Path
	}, nil, WithWorkers(4))

	ctx := context.Background()
	for i := 0; i < n; i++ {
		require.NoError(t, pool.Enqueue(ctx, Job{Index: i, Path: string(rune('a' + i)), SubmittedAt: time.Now()}))
	}
	pool.Shutdown(ctx)

	for i := 0; i < n; i++ {
		assert.Equal(t, string(rune('a'+i)), results[i])
	}
}

func TestPoolEnqueueAfterShutdownIsNoop(t *testing.T) {
	var ran atomic.Int32
	pool := NewPool(func(_ context.Context, _ Job) { ran.Add(1) }, nil, WithWorkers(1))

	ctx := context.Background()
	pool.Shutdown(ctx)
	require.NoError(t, pool.Enqueue(ctx, Job{Index: 0, Path: "late.pdf"}))
	assert.Equal(t, int32(0), ran.Load())
}

func TestPoolShutdownDrains(t *testing.T) {
	var ran atomic.Int32
	pool := NewPool(func(_ context.Context, _ Job) {
		time.Sleep(10 * time.Millisecond)
		ran.Add(1)
	}, nil, WithWorkers(2), WithQueueSize(8))

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		require.NoError(t, pool.Enqueue(ctx, Job{Index: i}))
	}
	pool.Shutdown(ctx)
	assert.Equal(t, int32(6), ran.Load())
}
