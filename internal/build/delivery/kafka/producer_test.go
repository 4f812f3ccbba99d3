package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"buildhook/internal/build"
	"buildhook/internal/model"
)

type record struct {
	topic string
	key   string
	value []byte
}

type fakeProducer struct {
	records []record
	err     error
}

func (f *fakeProducer) Publish(_ context.Context, topic, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record{topic: topic, key: key, value: value})
	return nil
}

func (f *fakeProducer) Close() {}

func TestPublish(t *testing.T) {
	t.Run("Keyed by repository", func(t *testing.T) {
		prod := &fakeProducer{}
		pub := New(prod, "builds")

		err := pub.Publish(context.Background(), build.Event{
			Type: build.EventBuildCreated,
			Build: model.Build{
				ID:           "b-1",
				RepositoryID: "r-1",
				CommitSHA:    "abc123",
				Branch:       "main",
				TriggerType:  model.TriggerPush,
				Status:       model.BuildStatusPending,
			},
		})
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if len(prod.records) != 1 {
			t.Fatalf("records = %d, want 1", len(prod.records))
		}
		rec := prod.records[0]
		if rec.topic != "builds" || rec.key != "r-1" {
			t.Errorf("topic/key = %s/%s", rec.topic, rec.key)
		}

		var msg eventMessage
		if err := json.Unmarshal(rec.value, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != "build.created" || msg.BuildID != "b-1" || msg.CommitSHA != "abc123" || msg.Status != "pending" {
			t.Errorf("message = %+v", msg)
		}
	})

	t.Run("Producer error", func(t *testing.T) {
		boom := errors.New("broker down")
		pub := New(&fakeProducer{err: boom}, "builds")
		err := pub.Publish(context.Background(), build.Event{Type: build.EventBuildCancelled})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
	})
}
