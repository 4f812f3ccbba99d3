package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"buildhook/internal/credential"
	"buildhook/internal/middleware"
	"buildhook/internal/model"
	"buildhook/pkg/log"
)

type fakeUseCase struct {
	credential.UseCase
	err     error
	enabled credential.EnableProjectInput
}

func (f *fakeUseCase) SetGitHubApp(ctx context.Context, in credential.SetGitHubAppInput) (model.GitHubAppCredential, error) {
	return model.GitHubAppCredential{ID: "app-1", AppID: in.AppID, Active: true}, f.err
}

func (f *fakeUseCase) AddInstallation(ctx context.Context, in credential.AddInstallationInput) (model.GitHubInstallation, error) {
	return model.GitHubInstallation{ID: "inst-1", InstallationID: in.InstallationID}, f.err
}

func (f *fakeUseCase) DisconnectGitLab(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeUseCase) EnableProject(ctx context.Context, in credential.EnableProjectInput) (model.GitLabEnabledProject, error) {
	f.enabled = in
	return model.GitLabEnabledProject{ID: "ep-1", RepositoryID: in.RepositoryID, CredentialID: in.CredentialID, ProjectID: in.ProjectID}, f.err
}

func setup(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc), middleware.New(log.NewNop(), ""))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCredentialRoutes(t *testing.T) {
	tcs := map[string]struct {
		err    error
		method string
		path   string
		body   string
		want   int
	}{
		"set github app":            {nil, http.MethodPut, "/api/v1/credentials/github-app", `{"app_id":1,"private_key":"pem"}`, http.StatusOK},
		"set github app needs key":  {nil, http.MethodPut, "/api/v1/credentials/github-app", `{"app_id":1}`, http.StatusBadRequest},
		"installation without app":  {credential.ErrNoActiveGitHubApp, http.MethodPost, "/api/v1/credentials/github-app/installations", `{"installation_id":9}`, http.StatusConflict},
		"disconnect unknown":        {credential.ErrCredentialNotFound, http.MethodDelete, "/api/v1/credentials/gitlab/nope", "", http.StatusNotFound},
		"enable project mismatch":   {credential.ErrRepositoryMismatch, http.MethodPost, "/api/v1/credentials/gitlab/c-1/projects", `{"repository_id":"r-1","project_id":5}`, http.StatusUnprocessableEntity},
		"unexpected error is a 500": {context.DeadlineExceeded, http.MethodPut, "/api/v1/credentials/github-app", `{"app_id":1,"private_key":"pem"}`, http.StatusInternalServerError},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			w := do(setup(&fakeUseCase{err: tc.err}), tc.method, tc.path, tc.body)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestEnableProjectPassesCredentialFromPath(t *testing.T) {
	uc := &fakeUseCase{}
	w := do(setup(uc), http.MethodPost, "/api/v1/credentials/gitlab/c-1/projects", `{"repository_id":"r-1","project_id":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if uc.enabled.CredentialID != "c-1" || uc.enabled.RepositoryID != "r-1" || uc.enabled.ProjectID != 5 {
		t.Errorf("input = %+v", uc.enabled)
	}
}

func TestResponsesNeverEchoSecrets(t *testing.T) {
	w := do(setup(&fakeUseCase{}), http.MethodPut, "/api/v1/credentials/github-app", `{"app_id":1,"private_key":"-----BEGIN SECRET-----"}`)
	if strings.Contains(w.Body.String(), "BEGIN SECRET") {
		t.Errorf("private key echoed: %s", w.Body.String())
	}
}
