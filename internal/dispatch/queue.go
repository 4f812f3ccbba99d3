package dispatch

import (
	"context"

	"buildhook/internal/model"
)

// Queue is the bounded FIFO between intake handlers and the single worker.
// Enqueue blocks while the queue is full.
type Queue struct {
	jobs chan model.DispatchJob
}

func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{jobs: make(chan model.DispatchJob, capacity)}
}

// Enqueue waits for room or for ctx to end. Jobs are never dropped silently.
func (q *Queue) Enqueue(ctx context.Context, job model.DispatchJob) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue adds job only if there is room right now.
func (q *Queue) TryEnqueue(job model.DispatchJob) bool {
	select {
	case q.jobs <- job:
		return true
	default:
		return false
	}
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

func (q *Queue) Cap() int {
	return cap(q.jobs)
}
