package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"buildhook/internal/build"
	"buildhook/internal/credential"
	"buildhook/internal/gitrepo"
	"buildhook/internal/model"
	"buildhook/internal/webhook"
	"buildhook/pkg/log"
)

type stubGitRepo struct{ gitrepo.UseCase }

type stubCredential struct{ credential.UseCase }

type stubBuild struct{ build.UseCase }

func (stubBuild) List(ctx context.Context, in build.ListInput) (build.ListOutput, error) {
	return build.ListOutput{Builds: []model.Build{}, Limit: in.Limit}, nil
}

type stubWebhook struct{ webhook.UseCase }

func (stubWebhook) VerifyGitHub(ctx context.Context, signature string, body []byte) error {
	return webhook.ErrVerificationFailed
}

type fixedQueue struct{ depth, capacity int }

func (q fixedQueue) Len() int { return q.depth }
func (q fixedQueue) Cap() int { return q.capacity }

func newTestServer(t *testing.T, adminKey string) *HTTPServer {
	t.Helper()
	guard, err := webhook.NewGuard(webhook.GuardConfig{})
	if err != nil {
		t.Fatal(err)
	}
	srv, err := New(log.NewNop(), Config{
		Port:            8080,
		Mode:            gin.TestMode,
		Environment:     string(model.EnvironmentDevelopment),
		Queue:           fixedQueue{depth: 3, capacity: 256},
		AdminAPIKey:     adminKey,
		Guard:           guard,
		MaxPayloadBytes: 1 << 20,
		GitRepoUC:       stubGitRepo{},
		CredentialUC:    stubCredential{},
		BuildUC:         stubBuild{},
		WebhookUC:       stubWebhook{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestNewValidates(t *testing.T) {
	tcs := map[string]Config{
		"missing mode":      {Port: 8080},
		"missing port":      {Mode: gin.TestMode},
		"missing guard":     {Port: 8080, Mode: gin.TestMode},
		"missing use cases": {Port: 8080, Mode: gin.TestMode, Guard: &webhook.Guard{}},
	}
	for name, cfg := range tcs {
		t.Run(name, func(t *testing.T) {
			if _, err := New(log.NewNop(), cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestReadyReportsQueueDepth(t *testing.T) {
	srv := newTestServer(t, "")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data struct {
			Queue struct {
				Depth    int `json:"depth"`
				Capacity int `json:"capacity"`
			} `json:"dispatch_queue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Queue.Depth != 3 || body.Data.Queue.Capacity != 256 {
		t.Errorf("queue = %+v", body.Data.Queue)
	}
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, "admin-key")

	tcs := map[string]struct {
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		"health":                  {http.MethodGet, "/health", "", "", http.StatusOK},
		"live":                    {http.MethodGet, "/live", "", "", http.StatusOK},
		"admin api needs key":     {http.MethodGet, "/api/v1/builds", "", "", http.StatusUnauthorized},
		"admin api wrong key":     {http.MethodGet, "/api/v1/builds", "Bearer nope", "", http.StatusUnauthorized},
		"admin api with key":      {http.MethodGet, "/api/v1/builds", "Bearer admin-key", "", http.StatusOK},
		"intake skips admin auth": {http.MethodPost, "/webhooks/github", "", `{}`, http.StatusUnauthorized},
		"unknown route":           {http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q", got)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("no request id generated")
	}
}
