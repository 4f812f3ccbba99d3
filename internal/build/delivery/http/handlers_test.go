package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"buildhook/internal/build"
	"buildhook/internal/middleware"
	"buildhook/internal/model"
	"buildhook/internal/token"
	"buildhook/pkg/log"
)

type fakeUseCase struct {
	err       error
	triggered build.TriggerInput
	status    build.UpdateStatusInput
	cancel    build.CancelOutput
	tok       *token.Token
}

func (f *fakeUseCase) Create(ctx context.Context, in build.CreateInput) (model.Build, error) {
	return model.Build{}, f.err
}

func (f *fakeUseCase) Trigger(ctx context.Context, in build.TriggerInput) (model.Build, error) {
	f.triggered = in
	if f.err != nil {
		return model.Build{}, f.err
	}
	return model.Build{ID: "b-1", RepositoryID: in.RepositoryID, TriggerType: model.TriggerManual, Status: model.BuildStatusPending}, nil
}

func (f *fakeUseCase) Detail(ctx context.Context, id string) (model.Build, error) {
	return model.Build{ID: id}, f.err
}

func (f *fakeUseCase) List(ctx context.Context, in build.ListInput) (build.ListOutput, error) {
	return build.ListOutput{Limit: in.Limit}, f.err
}

func (f *fakeUseCase) UpdateStatus(ctx context.Context, in build.UpdateStatusInput) (model.Build, error) {
	f.status = in
	return model.Build{ID: in.ID, Status: in.Status}, f.err
}

func (f *fakeUseCase) Cancel(ctx context.Context, id string) (build.CancelOutput, error) {
	return f.cancel, f.err
}

func (f *fakeUseCase) Credentials(ctx context.Context, id string) (*token.Token, error) {
	return f.tok, f.err
}

func newTestRouter(uc build.UseCase, adminKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), middleware.New(log.NewNop(), adminKey))
	return r
}

func do(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTriggerHandler(t *testing.T) {
	tcs := map[string]struct {
		body     string
		err      error
		wantCode int
	}{
		"ok":                 {body: `{"repository_id":"r-1","branch":"main"}`, wantCode: http.StatusOK},
		"missing repository": {body: `{"branch":"main"}`, wantCode: http.StatusBadRequest},
		"bad sha":            {body: `{"repository_id":"r-1","commit_sha":"not-a-sha"}`, wantCode: http.StatusBadRequest},
		"not configured": {
			body:     `{"repository_id":"r-1"}`,
			err:      &token.ConfigError{Provider: model.ProviderGitHub, Reason: "no active GitHub App", Remediation: "register one"},
			wantCode: http.StatusUnprocessableEntity,
		},
		"provider unavailable": {body: `{"repository_id":"r-1"}`, err: token.ErrProviderUnavailable, wantCode: http.StatusServiceUnavailable},
		"inactive":             {body: `{"repository_id":"r-1"}`, err: build.ErrRepositoryInactive, wantCode: http.StatusUnprocessableEntity},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			w := do(newTestRouter(&fakeUseCase{err: tc.err}, ""), http.MethodPost, "/api/v1/builds", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Errorf("status = %d, want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}

func TestCancelHandler(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		uc := &fakeUseCase{cancel: build.CancelOutput{Build: model.Build{ID: "b-1", Status: model.BuildStatusCancelled}}}
		w := do(newTestRouter(uc, ""), http.MethodPost, "/api/v1/builds/b-1/cancel", "", nil)
		if w.Code != http.StatusAccepted {
			t.Fatalf("status = %d", w.Code)
		}
		var resp struct {
			Data cancelResp `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Data.Build.Status != "cancelled" || resp.Data.Already {
			t.Errorf("unexpected response %+v", resp.Data)
		}
	})

	t.Run("Already finished", func(t *testing.T) {
		uc := &fakeUseCase{cancel: build.CancelOutput{Build: model.Build{ID: "b-1", Status: model.BuildStatusSuccess}, NoOp: true}}
		w := do(newTestRouter(uc, ""), http.MethodPost, "/api/v1/builds/b-1/cancel", "", nil)
		if w.Code != http.StatusAccepted {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"already_finished":true`) {
			t.Errorf("body = %s", w.Body.String())
		}
	})

	t.Run("Not found", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{err: build.ErrBuildNotFound}, ""), http.MethodPost, "/api/v1/builds/x/cancel", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestUpdateStatusHandler(t *testing.T) {
	t.Run("Passes status through", func(t *testing.T) {
		uc := &fakeUseCase{}
		w := do(newTestRouter(uc, ""), http.MethodPatch, "/api/v1/builds/b-1/status", `{"status":"failure","error_message":"exit 2"}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
		}
		if uc.status.ID != "b-1" || uc.status.Status != model.BuildStatusFailure || uc.status.ErrorMessage != "exit 2" {
			t.Errorf("input = %+v", uc.status)
		}
	})

	t.Run("Invalid transition", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{err: build.ErrInvalidTransition}, ""), http.MethodPatch, "/api/v1/builds/b-1/status", `{"status":"running"}`, nil)
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("Pending is not reportable", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}, ""), http.MethodPatch, "/api/v1/builds/b-1/status", `{"status":"pending"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestCredentialsHandler(t *testing.T) {
	t.Run("Public repository", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{}, ""), http.MethodPost, "/api/v1/builds/b-1/credentials", "", nil)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"public":true`) {
			t.Errorf("status = %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("Grant revoked", func(t *testing.T) {
		w := do(newTestRouter(&fakeUseCase{err: token.ErrGrantRevoked}, ""), http.MethodPost, "/api/v1/builds/b-1/credentials", "", nil)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("Requires admin key", func(t *testing.T) {
		r := newTestRouter(&fakeUseCase{}, "s3cret")
		if w := do(r, http.MethodPost, "/api/v1/builds/b-1/credentials", "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("status without key = %d", w.Code)
		}
		if w := do(r, http.MethodPost, "/api/v1/builds/b-1/credentials", "", map[string]string{"Authorization": "Bearer s3cret"}); w.Code != http.StatusOK {
			t.Errorf("status with key = %d", w.Code)
		}
	})
}
