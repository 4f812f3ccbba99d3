// Package repotest provides an in-memory build store for tests.
package repotest

import (
	"context"
	"strconv"
	"sync"
	"time"

	repo "buildhook/internal/build/repository"
	"buildhook/internal/model"
)

// Memory implements repository.Repository in memory.
type Memory struct {
	mu     sync.Mutex
	seq    int
	builds map[string]model.Build
}

var _ repo.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{builds: make(map[string]model.Build)}
}

func (m *Memory) Create(ctx context.Context, opt repo.CreateOptions) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	b := model.Build{
		ID:             "build-" + strconv.Itoa(m.seq),
		RepositoryID:   opt.RepositoryID,
		WebhookEventID: opt.WebhookEventID,
		CommitSHA:      opt.CommitSHA,
		Branch:         opt.Branch,
		TriggerType:    opt.TriggerType,
		Status:         model.BuildStatusPending,
		WorkflowName:   opt.WorkflowName,
		ConfigSource:   opt.ConfigSource,
		CreatedAt:      time.Now(),
	}
	m.builds[b.ID] = b
	return b, nil
}

func (m *Memory) GetOne(ctx context.Context, id string) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds[id], nil
}

func (m *Memory) List(ctx context.Context, opt repo.ListOptions) ([]model.Build, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Build
	for _, b := range m.builds {
		if opt.RepositoryID != "" && b.RepositoryID != opt.RepositoryID {
			continue
		}
		if opt.Status != "" && b.Status != opt.Status {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (m *Memory) UpdateStatus(ctx context.Context, opt repo.UpdateStatusOptions) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.builds[opt.ID]
	if !ok || b.Status != opt.From {
		return model.Build{}, nil
	}
	b.Status = opt.To
	b.ErrorMessage = opt.ErrorMessage
	now := time.Now()
	if opt.To == model.BuildStatusRunning {
		b.StartedAt = &now
	}
	if opt.To.IsTerminal() {
		b.FinishedAt = &now
	}
	m.builds[b.ID] = b
	return b, nil
}

func (m *Memory) CancelActive(ctx context.Context, id string) (model.Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.builds[id]
	if !ok || b.Status.IsTerminal() {
		return model.Build{}, nil
	}
	now := time.Now()
	b.Status = model.BuildStatusCancelled
	b.FinishedAt = &now
	m.builds[id] = b
	return b, nil
}

// Set overwrites a stored build.
func (m *Memory) Set(b model.Build) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.builds[b.ID] = b
}
