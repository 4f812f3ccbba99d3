// Package repotest provides an in-memory webhook event store for tests.
package repotest

import (
	"context"
	"strconv"
	"sync"
	"time"

	"buildhook/internal/model"
	repo "buildhook/internal/webhook/repository"
)

// Memory implements repository.Repository in memory.
type Memory struct {
	mu     sync.Mutex
	seq    int
	events []model.WebhookEvent
}

func (m *Memory) Create(ctx context.Context, opt repo.CreateOptions) (model.WebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.Provider == opt.Provider && ev.DeliveryID == opt.DeliveryID {
			return model.WebhookEvent{}, repo.ErrDuplicate
		}
	}
	m.seq++
	ev := model.WebhookEvent{
		ID:            "ev-" + strconv.Itoa(m.seq),
		RepositoryID:  opt.RepositoryID,
		Provider:      opt.Provider,
		EventType:     opt.EventType,
		DeliveryID:    opt.DeliveryID,
		Payload:       opt.Payload,
		PayloadDigest: opt.PayloadDigest,
		ReceivedAt:    time.Now(),
	}
	m.events = append(m.events, ev)
	return ev, nil
}

func (m *Memory) GetOne(ctx context.Context, id string) (model.WebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return model.WebhookEvent{}, nil
}

func (m *Memory) List(ctx context.Context, opt repo.ListOptions) ([]model.WebhookEvent, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WebhookEvent(nil), m.events...), len(m.events), nil
}

func (m *Memory) MarkProcessed(ctx context.Context, opt repo.MarkProcessedOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == opt.ID {
			m.events[i].Processed = true
			m.events[i].ErrorMessage = opt.ErrorMessage
			if m.events[i].RepositoryID == nil {
				m.events[i].RepositoryID = opt.RepositoryID
			}
		}
	}
	return nil
}

func (m *Memory) ListUnprocessed(ctx context.Context) ([]model.WebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.WebhookEvent
	for _, ev := range m.events {
		if !ev.Processed {
			out = append(out, ev)
		}
	}
	return out, nil
}

var _ repo.Repository = (*Memory)(nil)

// Events returns a snapshot of the stored events.
func (m *Memory) Events() []model.WebhookEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WebhookEvent(nil), m.events...)
}
