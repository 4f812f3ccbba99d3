package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buildhook/internal/build"
	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/internal/webhook"
	"buildhook/pkg/log"
)

const (
	DefaultJobTimeout    = 2 * time.Minute
	DefaultSweepInterval = time.Minute
	markTimeout          = 10 * time.Second
	configSource         = "webhook"
)

// WorkerConfig tunes the worker. Zero values select the defaults.
type WorkerConfig struct {
	JobTimeout time.Duration
	// SweepInterval is how often the worker re-queues events that were
	// stored but never queued. Only events older than one interval qualify.
	SweepInterval time.Duration
}

// Worker is the single consumer of the dispatch queue.
type Worker struct {
	queue      *Queue
	events     EventStore
	repos      RepositoryResolver
	builds     BuildCreator
	tokens     TokenSource
	jobTimeout time.Duration
	sweepEvery time.Duration
	now        func() time.Time
	l          log.Logger
}

func NewWorker(
	queue *Queue,
	events EventStore,
	repos RepositoryResolver,
	builds BuildCreator,
	tokens TokenSource,
	cfg WorkerConfig,
	l log.Logger,
) *Worker {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	return &Worker{
		queue:      queue,
		events:     events,
		repos:      repos,
		builds:     builds,
		tokens:     tokens,
		jobTimeout: cfg.JobTimeout,
		sweepEvery: cfg.SweepInterval,
		now:        time.Now,
		l:          l,
	}
}

// Run processes jobs in arrival order until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.l.Infof(ctx, "internal.dispatch.worker.Run: started (capacity %d)", w.queue.Cap())
	ticker := time.NewTicker(w.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.l.Infof(ctx, "internal.dispatch.worker.Run: stopped with %d queued", w.queue.Len())
			return
		case job := <-w.queue.jobs:
			w.process(ctx, job)
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep re-queues events whose enqueue was abandoned after they were stored,
// e.g. when the provider hung up while the queue was full. It runs on the
// worker goroutine, so with an empty queue no other job for the event exists.
func (w *Worker) sweep(ctx context.Context) int {
	if w.queue.Len() > 0 {
		return 0
	}
	events, err := w.events.ListUnprocessed(ctx)
	if err != nil {
		w.l.Errorf(ctx, "internal.dispatch.worker.sweep: listing unprocessed events: %v", err)
		return 0
	}

	cutoff := w.now().Add(-w.sweepEvery)
	n := 0
	for _, ev := range events {
		if ev.ReceivedAt.After(cutoff) {
			continue
		}
		job := model.DispatchJob{EventID: ev.ID, Provider: ev.Provider, EventType: ev.EventType}
		if !w.queue.TryEnqueue(job) {
			break
		}
		n++
	}
	if n > 0 {
		w.l.Warnf(ctx, "internal.dispatch.worker.sweep: re-enqueued %d stranded events", n)
	}
	return n
}

// Recover re-enqueues every event left unprocessed, e.g. by a crash between
// ingestion and dispatch. It must run before intake opens.
func (w *Worker) Recover(ctx context.Context) (int, error) {
	events, err := w.events.ListUnprocessed(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing unprocessed events: %w", err)
	}

	n := 0
	for _, ev := range events {
		job := model.DispatchJob{EventID: ev.ID, Provider: ev.Provider, EventType: ev.EventType}
		if err := w.queue.Enqueue(ctx, job); err != nil {
			return n, fmt.Errorf("re-enqueueing %s: %w", ev.ID, err)
		}
		n++
	}
	if n > 0 {
		w.l.Infof(ctx, "internal.dispatch.worker.Recover: re-enqueued %d unprocessed events", n)
	}
	return n, nil
}

// process always ends with the event marked processed, recording the error
// if there was one. Failed events are not retried. The only exception is
// shutdown: an interrupted job stays unprocessed so recovery picks it up.
func (w *Worker) process(ctx context.Context, job model.DispatchJob) {
	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	ev, err := w.events.Detail(jobCtx, job.EventID)
	if err != nil {
		if ctx.Err() != nil {
			w.l.Warnf(ctx, "internal.dispatch.worker.process: %s interrupted by shutdown", job.EventID)
			return
		}
		w.l.Errorf(ctx, "internal.dispatch.worker.process: loading %s: %v", job.EventID, err)
		w.markProcessed(ctx, webhook.MarkProcessedInput{
			ID:           job.EventID,
			ErrorMessage: fmt.Sprintf("loading event: %v", err),
		})
		return
	}
	if ev.Processed {
		w.l.Debugf(ctx, "internal.dispatch.worker.process: %s already processed", ev.ID)
		return
	}

	repoID, err := w.dispatch(jobCtx, ev)
	if err != nil && ctx.Err() != nil {
		w.l.Warnf(ctx, "internal.dispatch.worker.process: %s interrupted by shutdown", ev.ID)
		return
	}

	input := webhook.MarkProcessedInput{ID: ev.ID, RepositoryID: repoID}
	if err != nil {
		w.l.Errorf(ctx, "internal.dispatch.worker.process: %s: %v", ev.ID, err)
		input.ErrorMessage = err.Error()
	}
	w.markProcessed(ctx, input)
}

// markProcessed outlives the job deadline: a job that timed out must still
// be recorded, otherwise recovery replays it forever.
func (w *Worker) markProcessed(ctx context.Context, input webhook.MarkProcessedInput) {
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
	defer cancel()
	if err := w.events.MarkProcessed(markCtx, input); err != nil {
		w.l.Errorf(ctx, "internal.dispatch.worker.process: marking %s: %v", input.ID, err)
	}
}

// dispatch returns the resolved repository id, if any, and the processing error.
func (w *Worker) dispatch(ctx context.Context, ev model.WebhookEvent) (*string, error) {
	parsed, err := webhook.Parse(ev.Provider, ev.EventType, ev.Payload)
	if err != nil {
		return nil, err
	}
	if parsed.Kind == model.EventKindUnsupported {
		w.l.Debugf(ctx, "internal.dispatch.worker.dispatch: %s %s not buildable", ev.Provider, ev.EventType)
		return nil, nil
	}

	input := gitrepo.ResolveInput{
		Provider:       ev.Provider,
		ProviderRepoID: parsed.ProviderRepoID,
		Owner:          parsed.Owner,
		Name:           parsed.Name,
	}
	if ev.RepositoryID != nil {
		input.ID = *ev.RepositoryID
	}
	target, err := w.repos.Resolve(ctx, input)
	if errors.Is(err, gitrepo.ErrRepositoryNotFound) {
		w.l.Infof(ctx, "internal.dispatch.worker.dispatch: no registered repository for %s %s", ev.Provider, parsed.FullName())
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving repository: %w", err)
	}
	repoID := &target.ID

	if !target.Active {
		w.l.Infof(ctx, "internal.dispatch.worker.dispatch: %s is inactive", target.FullName())
		return repoID, nil
	}
	if !ShouldTrigger(parsed) {
		w.l.Debugf(ctx, "internal.dispatch.worker.dispatch: %s %s action %q skipped", target.FullName(), parsed.Kind, parsed.RawAction)
		return repoID, nil
	}

	if _, err := w.tokens.GetRepositoryAuthToken(ctx, target); err != nil {
		if errors.Is(err, token.ErrProviderUnavailable) {
			// The executor asks for credentials again when it starts.
			w.l.Warnf(ctx, "internal.dispatch.worker.dispatch: credentials for %s: %v", target.FullName(), err)
		} else {
			return repoID, fmt.Errorf("credentials for %s: %w", target.FullName(), err)
		}
	}

	b, err := w.builds.Create(ctx, build.CreateInput{
		RepositoryID:   target.ID,
		WebhookEventID: &ev.ID,
		CommitSHA:      parsed.CommitSHA,
		Branch:         parsed.Branch,
		TriggerType:    triggerType(parsed.Kind),
		ConfigSource:   configSource,
	})
	if err != nil {
		return repoID, fmt.Errorf("creating build: %w", err)
	}

	w.l.Infof(ctx, "internal.dispatch.worker.dispatch: build %s for %s@%s from event %s", b.ID, target.FullName(), parsed.Branch, ev.ID)
	return repoID, nil
}
