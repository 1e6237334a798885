package async

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingProcessor) Process(_ context.Context, task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, task.JobID)
	return nil
}

func (r *recordingProcessor) jobIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessorQueue_ProcessesAllEnqueuedTasks(t *testing.T) {
	rec := &recordingProcessor{}
	q := NewProcessorQueue(rec, testLogger(), WithWorkers(3), WithQueueSize(16))

	const n = 50
	for i := 0; i < n; i++ {
		require.NoError(t, q.Enqueue(context.Background(), Task{JobID: string(rune('a' + i%26))}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Len(t, rec.jobIDs(), n)
}

func TestProcessorQueue_EnqueueAfterShutdownReturnsError(t *testing.T) {
	rec := &recordingProcessor{}
	q := NewProcessorQueue(rec, testLogger(), WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)

	err := q.Enqueue(context.Background(), Task{JobID: "late"})
	require.ErrorIs(t, err, ErrQueueClosed)
	assert.Empty(t, rec.jobIDs())
}

type gatedProcessor struct {
	recordingProcessor
	gate chan struct{}
}

func (g *gatedProcessor) Process(ctx context.Context, task Task) error {
	<-g.gate
	return g.recordingProcessor.Process(ctx, task)
}

func TestProcessorQueue_ShutdownCompletesBehindFullQueue(t *testing.T) {
	gated := &gatedProcessor{gate: make(chan struct{})}
	q := NewProcessorQueue(gated, testLogger(), WithWorkers(1), WithQueueSize(1))

	// Fill the pipeline: one task held by the worker, one in the buffer,
	// one producer blocked in the backpressure send.
	require.NoError(t, q.Enqueue(context.Background(), Task{JobID: "held"}))
	require.NoError(t, q.Enqueue(context.Background(), Task{JobID: "buffered"}))
	enqueued := make(chan error, 1)
	go func() {
		enqueued <- q.Enqueue(context.Background(), Task{JobID: "backpressured"})
	}()

	// Let the producer reach the blocking send before draining begins, so
	// shutdown really does start behind a full queue.
	time.Sleep(100 * time.Millisecond)
	close(gated.gate)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)
	require.NoError(t, ctx.Err(), "shutdown stalled behind the full queue")

	require.NoError(t, <-enqueued)
	assert.ElementsMatch(t, []string{"held", "buffered", "backpressured"}, gated.jobIDs())
}

func TestProcessorQueue_ShutdownIsIdempotent(t *testing.T) {
	q := NewProcessorQueue(&recordingProcessor{}, testLogger(), WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx)
}
