package dispatch

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"buildhook/internal/build"
	buildRepo "buildhook/internal/build/repository"
	buildRepotest "buildhook/internal/build/repository/repotest"
	buildUC "buildhook/internal/build/usecase"
	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/internal/webhook"
	webhookRepo "buildhook/internal/webhook/repository"
	webhookRepotest "buildhook/internal/webhook/repository/repotest"
	webhookUC "buildhook/internal/webhook/usecase"
	"buildhook/pkg/log"
)

type fakeRepos []model.Repository

func (f fakeRepos) Resolve(ctx context.Context, in gitrepo.ResolveInput) (model.Repository, error) {
	for _, r := range f {
		if in.ID != "" && r.ID == in.ID {
			return r, nil
		}
	}
	for _, r := range f {
		if r.Provider == in.Provider && r.GitHubRepoID != nil && *r.GitHubRepoID == in.ProviderRepoID {
			return r, nil
		}
	}
	for _, r := range f {
		if r.Provider == in.Provider && r.Owner == in.Owner && r.Name == in.Name {
			return r, nil
		}
	}
	return model.Repository{}, gitrepo.ErrRepositoryNotFound
}

func (f fakeRepos) Detail(ctx context.Context, id string) (model.Repository, error) {
	return f.Resolve(ctx, gitrepo.ResolveInput{ID: id})
}

type fakeTokens struct {
	err error
}

func (f fakeTokens) GetRepositoryAuthToken(ctx context.Context, r model.Repository) (*token.Token, error) {
	return nil, f.err
}

type noSecrets struct{}

func (noSecrets) GitHubWebhookSecret(ctx context.Context) ([]byte, error) { return nil, nil }

const githubSecret = "whsec"

type harness struct {
	queue  *Queue
	events *webhookRepotest.Memory
	builds *buildRepotest.Memory
	intake webhook.UseCase
	worker *Worker
}

func newHarness(t *testing.T, tokens fakeTokens, repos ...model.Repository) harness {
	t.Helper()
	if repos == nil {
		repoID := int64(42)
		repos = []model.Repository{{
			ID: "repo-1", Provider: model.ProviderGitHub, Owner: "acme", Name: "api",
			DefaultBranch: "main", Active: true, GitHubRepoID: &repoID,
		}}
	}
	nop := log.NewNop()
	queue := NewQueue(16)
	events := &webhookRepotest.Memory{}
	builds := buildRepotest.NewMemory()

	intake := webhookUC.New(events, noSecrets{}, fakeRepos(repos), queue, webhook.Config{
		MaxPayloadBytes: 10 << 20,
		GitHubSecret:    githubSecret,
		Pepper:          []byte("pepper"),
	}, nop)
	builder := buildUC.New(builds, fakeRepos(repos), tokens, build.NewCancelRegistry(), nil, nop)

	return harness{
		queue:  queue,
		events: events,
		builds: builds,
		intake: intake,
		worker: NewWorker(queue, intake, fakeRepos(repos), builder, tokens, WorkerConfig{JobTimeout: time.Second}, nop),
	}
}

// drain processes everything queued so far on the calling goroutine.
func (h harness) drain(t *testing.T) {
	t.Helper()
	for h.queue.Len() > 0 {
		h.worker.process(context.Background(), <-h.queue.jobs)
	}
}

func (h harness) deliver(t *testing.T, deliveryID, eventType, body string) {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(githubSecret))
	mac.Write([]byte(body))
	sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if err := h.intake.VerifyGitHub(context.Background(), sig, []byte(body)); err != nil {
		t.Fatalf("VerifyGitHub: %v", err)
	}
	if _, err := h.intake.Ingest(context.Background(), webhook.IngestInput{
		Provider: model.ProviderGitHub, DeliveryID: deliveryID, EventType: eventType, Payload: []byte(body),
	}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
}

func (h harness) allBuilds(t *testing.T) []model.Build {
	t.Helper()
	out, _, err := h.builds.List(context.Background(), buildRepo.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

const pushMain = `{"ref":"refs/heads/main","after":"abc123def","repository":{"id":42,"name":"api","owner":{"login":"acme"}},"head_commit":{"id":"abc123def","message":"m","author":{"name":"a"}}}`

func prBody(action string) string {
	return `{"action":"` + action + `","number":7,"pull_request":{"head":{"ref":"feature","sha":"beef"},"merged":false},"repository":{"id":42,"name":"api","owner":{"login":"acme"}}}`
}

func TestGitHubPushScenario(t *testing.T) {
	h := newHarness(t, fakeTokens{})
	h.deliver(t, "abc123", "push", pushMain)
	h.drain(t)

	events := h.events.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if !ev.Processed || ev.ErrorMessage != nil {
		t.Errorf("event processed=%v error=%v", ev.Processed, ev.ErrorMessage)
	}
	if ev.RepositoryID == nil || *ev.RepositoryID != "repo-1" {
		t.Errorf("event repository = %v", ev.RepositoryID)
	}

	builds := h.allBuilds(t)
	if len(builds) != 1 {
		t.Fatalf("builds = %d, want 1", len(builds))
	}
	b := builds[0]
	if b.Status != model.BuildStatusPending || b.TriggerType != model.TriggerPush || b.Branch != "main" || b.CommitSHA != "abc123def" {
		t.Errorf("build = %+v", b)
	}
	if b.WebhookEventID == nil || *b.WebhookEventID != ev.ID {
		t.Errorf("build not linked to event")
	}

	// Redelivery of the same id creates nothing new.
	_, err := h.intake.Ingest(context.Background(), webhook.IngestInput{
		Provider: model.ProviderGitHub, DeliveryID: "abc123", EventType: "push", Payload: []byte(pushMain),
	})
	if !errors.Is(err, webhook.ErrDuplicateDelivery) {
		t.Errorf("redelivery err = %v", err)
	}
	h.drain(t)
	if len(h.allBuilds(t)) != 1 {
		t.Error("redelivery created a second build")
	}
}

func TestDispatchOutcomes(t *testing.T) {
	tcs := map[string]struct {
		eventType  string
		body       string
		tokens     fakeTokens
		wantBuilds int
		wantError  bool
	}{
		"pr opened":        {eventType: "pull_request", body: prBody("opened"), wantBuilds: 1},
		"pr synchronize":   {eventType: "pull_request", body: prBody("synchronize"), wantBuilds: 1},
		"pr closed":        {eventType: "pull_request", body: prBody("closed"), wantBuilds: 0},
		"pr labeled":       {eventType: "pull_request", body: prBody("labeled"), wantBuilds: 0},
		"unsupported kind": {eventType: "issues", body: `{"repository":{"id":42,"name":"api","owner":{"login":"acme"}}}`, wantBuilds: 0},
		"unknown repository": {
			eventType:  "push",
			body:       `{"ref":"refs/heads/main","after":"abc","repository":{"id":9,"name":"other","owner":{"login":"x"}},"head_commit":{"id":"abc"}}`,
			wantBuilds: 0,
		},
		"credentials not configured": {
			eventType:  "push",
			body:       pushMain,
			tokens:     fakeTokens{err: &token.ConfigError{Provider: model.ProviderGitHub, Reason: "no app", Remediation: "register one"}},
			wantBuilds: 0,
			wantError:  true,
		},
		"provider unavailable still builds": {
			eventType:  "push",
			body:       pushMain,
			tokens:     fakeTokens{err: token.ErrProviderUnavailable},
			wantBuilds: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, tc.tokens)
			h.deliver(t, "d-"+name, tc.eventType, tc.body)
			h.drain(t)

			if got := len(h.allBuilds(t)); got != tc.wantBuilds {
				t.Errorf("builds = %d, want %d", got, tc.wantBuilds)
			}
			ev := h.events.Events()[0]
			if !ev.Processed {
				t.Error("event not marked processed")
			}
			if (ev.ErrorMessage != nil) != tc.wantError {
				t.Errorf("error message = %v, want error %v", ev.ErrorMessage, tc.wantError)
			}
		})
	}
}

func TestInactiveRepositorySkipped(t *testing.T) {
	repoID := int64(42)
	h := newHarness(t, fakeTokens{}, model.Repository{
		ID: "repo-1", Provider: model.ProviderGitHub, Owner: "acme", Name: "api", Active: false, GitHubRepoID: &repoID,
	})
	h.deliver(t, "d1", "push", pushMain)
	h.drain(t)
	if len(h.allBuilds(t)) != 0 {
		t.Error("inactive repository produced a build")
	}
}

func TestRecover(t *testing.T) {
	const n = 5
	h := newHarness(t, fakeTokens{})

	// Simulate a crash after the durable write: events stored, never queued.
	for i := 0; i < n; i++ {
		_, err := h.events.Create(context.Background(), webhookRepo.CreateOptions{
			Provider:   model.ProviderGitHub,
			EventType:  "push",
			DeliveryID: "crash-" + strconv.Itoa(i),
			Payload:    []byte(pushMain),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := h.worker.Recover(context.Background())
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if got != n || h.queue.Len() != n {
		t.Fatalf("recovered %d, queued %d, want %d", got, h.queue.Len(), n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.worker.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		unprocessed, _ := h.events.ListUnprocessed(context.Background())
		if len(unprocessed) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("%d events still unprocessed", len(unprocessed))
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if len(h.allBuilds(t)) != n {
		t.Errorf("builds = %d, want %d", len(h.allBuilds(t)), n)
	}
	if again, _ := h.worker.Recover(context.Background()); again != 0 {
		t.Errorf("second recovery re-enqueued %d", again)
	}
}

// ctxStore behaves like a database-backed store: calls fail once ctx is done.
type ctxStore struct {
	EventStore
	detailErr error
}

func (s ctxStore) Detail(ctx context.Context, id string) (model.WebhookEvent, error) {
	if s.detailErr != nil {
		return model.WebhookEvent{}, s.detailErr
	}
	if err := ctx.Err(); err != nil {
		return model.WebhookEvent{}, err
	}
	return s.EventStore.Detail(ctx, id)
}

func (s ctxStore) MarkProcessed(ctx context.Context, input webhook.MarkProcessedInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.EventStore.MarkProcessed(ctx, input)
}

// stallingTokens never answers before the job deadline.
type stallingTokens struct{}

func (stallingTokens) GetRepositoryAuthToken(ctx context.Context, r model.Repository) (*token.Token, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProcessMarksFailedJobs(t *testing.T) {
	tcs := map[string]struct {
		detailErr error
		wantError string
	}{
		"job deadline exceeded": {wantError: "context deadline exceeded"},
		"event cannot be loaded": {
			detailErr: errors.New("connection reset"),
			wantError: "loading event: connection reset",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, fakeTokens{})
			h.deliver(t, "d1", "push", pushMain)

			store := ctxStore{EventStore: h.intake, detailErr: tc.detailErr}
			w := NewWorker(h.queue, store, h.worker.repos, h.worker.builds, stallingTokens{},
				WorkerConfig{JobTimeout: 20 * time.Millisecond}, log.NewNop())
			w.process(context.Background(), <-h.queue.jobs)

			ev := h.events.Events()[0]
			if !ev.Processed {
				t.Fatal("event left unprocessed")
			}
			if ev.ErrorMessage == nil || !strings.Contains(*ev.ErrorMessage, tc.wantError) {
				t.Errorf("error message = %v, want %q", ev.ErrorMessage, tc.wantError)
			}
			if unprocessed, _ := h.events.ListUnprocessed(context.Background()); len(unprocessed) != 0 {
				t.Errorf("recovery would replay %d events", len(unprocessed))
			}
		})
	}
}

func TestProcessLeavesInterruptedJobForRecovery(t *testing.T) {
	h := newHarness(t, fakeTokens{})
	h.deliver(t, "d1", "push", pushMain)

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(h.queue, ctxStore{EventStore: h.intake}, h.worker.repos, h.worker.builds, stallingTokens{},
		WorkerConfig{JobTimeout: time.Minute}, log.NewNop())
	job := <-h.queue.jobs
	time.AfterFunc(20*time.Millisecond, cancel)
	w.process(ctx, job)

	if ev := h.events.Events()[0]; ev.Processed {
		t.Errorf("interrupted event marked processed with error %v", ev.ErrorMessage)
	}
}

func TestSweepRequeuesStrandedEvents(t *testing.T) {
	h := newHarness(t, fakeTokens{})
	stranded, err := h.events.Create(context.Background(), webhookRepo.CreateOptions{
		Provider: model.ProviderGitHub, EventType: "push", DeliveryID: "stranded", Payload: []byte(pushMain),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Too recent: its intake may still be enqueueing it.
	if n := h.worker.sweep(context.Background()); n != 0 {
		t.Fatalf("swept %d fresh events", n)
	}

	h.worker.now = func() time.Time { return time.Now().Add(2 * DefaultSweepInterval) }

	// A non-empty queue may already hold the event.
	h.deliver(t, "queued", "push", pushMain)
	if n := h.worker.sweep(context.Background()); n != 0 {
		t.Fatalf("swept %d events with a busy queue", n)
	}
	h.drain(t)

	if n := h.worker.sweep(context.Background()); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if job := <-h.queue.jobs; job.EventID != stranded.ID {
		t.Fatalf("swept %s, want %s", job.EventID, stranded.ID)
	}
}
