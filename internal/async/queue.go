package async

import (
	"context"
	"errors"
	"time"
)

// ErrQueueClosed is returned by Enqueue once shutdown has begun; callers
// must fail the job themselves so it still reaches a terminal state.
var ErrQueueClosed = errors.New("queue is shut down")

// Task is the smallest useful unit handed from the upload path to the
// worker pool. Extend as needed later (trace, retry, priority).
type Task struct {
	JobID        string
	UploadPath   string
	OriginalName string
	SubmittedAt  time.Time
}

// Processor consumes one task. Failures are recorded in job state, never
// returned to the request that enqueued the task.
type Processor interface {
	Process(ctx context.Context, task Task) error
}

type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	Shutdown(ctx context.Context)
}
