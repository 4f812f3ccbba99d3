package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildhook/internal/model"
)

func TestQueue(t *testing.T) {
	t.Run("FIFO", func(t *testing.T) {
		q := NewQueue(3)
		for _, id := range []string{"a", "b", "c"} {
			if err := q.Enqueue(context.Background(), model.DispatchJob{EventID: id}); err != nil {
				t.Fatal(err)
			}
		}
		if q.Len() != 3 {
			t.Fatalf("Len = %d", q.Len())
		}
		for _, want := range []string{"a", "b", "c"} {
			if got := (<-q.jobs).EventID; got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		}
	})

	t.Run("TryEnqueue refuses when full", func(t *testing.T) {
		q := NewQueue(1)
		if !q.TryEnqueue(model.DispatchJob{EventID: "a"}) {
			t.Fatal("first TryEnqueue refused")
		}
		if q.TryEnqueue(model.DispatchJob{EventID: "b"}) {
			t.Error("TryEnqueue accepted past capacity")
		}
	})

	t.Run("Full queue blocks until context ends", func(t *testing.T) {
		q := NewQueue(1)
		if err := q.Enqueue(context.Background(), model.DispatchJob{EventID: "a"}); err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := q.Enqueue(ctx, model.DispatchJob{EventID: "b"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want DeadlineExceeded", err)
		}
		if q.Len() != 1 {
			t.Errorf("Len = %d, want 1", q.Len())
		}
	})

	t.Run("Blocked producer resumes when consumer drains", func(t *testing.T) {
		q := NewQueue(1)
		_ = q.Enqueue(context.Background(), model.DispatchJob{EventID: "a"})

		done := make(chan error, 1)
		go func() { done <- q.Enqueue(context.Background(), model.DispatchJob{EventID: "b"}) }()

		select {
		case <-done:
			t.Fatal("enqueue into a full queue returned early")
		case <-time.After(20 * time.Millisecond):
		}
		<-q.jobs
		if err := <-done; err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	})

	t.Run("Minimum capacity", func(t *testing.T) {
		if NewQueue(0).Cap() != 1 {
			t.Error("capacity should be clamped to 1")
		}
	})
}
