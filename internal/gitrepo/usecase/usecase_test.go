package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"buildhook/internal/gitrepo"
	repo "buildhook/internal/gitrepo/repository"
	"buildhook/internal/model"
	"buildhook/pkg/encrypter"
	"buildhook/pkg/log"
)

type memRepo struct {
	mu   sync.Mutex
	seq  int
	recs []model.Repository
}

func (m *memRepo) Create(ctx context.Context, opt repo.CreateOptions) (model.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.Provider == opt.Provider && strings.EqualFold(r.Owner, opt.Owner) && strings.EqualFold(r.Name, opt.Name) {
			return model.Repository{}, repo.ErrDuplicate
		}
	}
	m.seq++
	rec := model.Repository{
		ID:                   "repo-" + strconv.Itoa(m.seq),
		Provider:             opt.Provider,
		Owner:                opt.Owner,
		Name:                 opt.Name,
		CloneURL:             opt.CloneURL,
		DefaultBranch:        opt.DefaultBranch,
		Active:               true,
		GitHubRepoID:         opt.GitHubRepoID,
		GitHubInstallationID: opt.GitHubInstallationID,
		GitLabProjectID:      opt.GitLabProjectID,
		WebhookSecretHMAC:    opt.WebhookSecretHMAC,
	}
	m.recs = append(m.recs, rec)
	return rec, nil
}

func (m *memRepo) GetOne(ctx context.Context, opt repo.GetOneOptions) (model.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if opt.ID != "" && r.ID != opt.ID {
			continue
		}
		if opt.Provider != "" && r.Provider != opt.Provider {
			continue
		}
		if opt.GitHubRepoID != 0 && (r.GitHubRepoID == nil || *r.GitHubRepoID != opt.GitHubRepoID) {
			continue
		}
		if opt.GitLabProjectID != 0 && (r.GitLabProjectID == nil || *r.GitLabProjectID != opt.GitLabProjectID) {
			continue
		}
		if opt.Owner != "" && !strings.EqualFold(r.Owner, opt.Owner) {
			continue
		}
		if opt.Name != "" && !strings.EqualFold(r.Name, opt.Name) {
			continue
		}
		return r, nil
	}
	return model.Repository{}, nil
}

func (m *memRepo) List(ctx context.Context, opt repo.ListOptions) ([]model.Repository, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Repository
	for _, r := range m.recs {
		if opt.ActiveOnly && !r.Active {
			continue
		}
		if opt.Provider != "" && r.Provider != opt.Provider {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memRepo) update(id string, fn func(*model.Repository)) model.Repository {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.recs {
		if m.recs[i].ID == id {
			fn(&m.recs[i])
			return m.recs[i]
		}
	}
	return model.Repository{}
}

func (m *memRepo) UpdateSecretHMAC(ctx context.Context, id, secretHMAC string) (model.Repository, error) {
	return m.update(id, func(r *model.Repository) { r.WebhookSecretHMAC = secretHMAC }), nil
}

func (m *memRepo) Deactivate(ctx context.Context, id string) (model.Repository, error) {
	return m.update(id, func(r *model.Repository) { r.Active = false }), nil
}

func int64p(v int64) *int64 { return &v }

var pepper = []byte("test-pepper")

func newTestUseCase() (*implUseCase, *memRepo) {
	store := &memRepo{}
	return New(store, log.NewNop(), pepper), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores only the secret hmac", func(t *testing.T) {
		uc, store := newTestUseCase()
		out, err := uc.Register(ctx, gitrepo.RegisterInput{
			Provider:             model.ProviderGitHub,
			Owner:                "acme",
			Name:                 "api",
			CloneURL:             "https://github.com/acme/api.git",
			GitHubRepoID:         int64p(42),
			GitHubInstallationID: int64p(7),
			WebhookSecret:        "a-very-long-shared-secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.WebhookSecret != "a-very-long-shared-secret" {
			t.Errorf("secret not returned to caller")
		}
		if out.VerifiesIntake {
			t.Error("GitHub intake is verified with the App secret, not the repository secret")
		}
		stored := store.recs[0]
		if stored.WebhookSecretHMAC == "a-very-long-shared-secret" {
			t.Fatal("plaintext secret persisted")
		}
		if !encrypter.VerifyTokenHMAC(pepper, stored.WebhookSecretHMAC, "a-very-long-shared-secret") {
			t.Error("stored hmac does not verify the secret")
		}
		if stored.DefaultBranch != "main" {
			t.Errorf("default branch = %q", stored.DefaultBranch)
		}
	})

	t.Run("generates a secret when none given", func(t *testing.T) {
		uc, _ := newTestUseCase()
		out, err := uc.Register(ctx, gitrepo.RegisterInput{
			Provider: model.ProviderGitLab, Owner: "grp", Name: "svc",
			CloneURL: "https://gitlab.com/grp/svc.git", GitLabProjectID: int64p(9),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.WebhookSecret) != generatedSecretBytes*2 {
			t.Errorf("generated secret length = %d", len(out.WebhookSecret))
		}
		if !out.VerifiesIntake {
			t.Error("GitLab repository secret should verify intake")
		}
	})

	t.Run("rejects", func(t *testing.T) {
		tests := map[string]struct {
			input gitrepo.RegisterInput
			want  error
		}{
			"unknown provider": {
				input: gitrepo.RegisterInput{Provider: "bitbucket", Owner: "a", Name: "b", CloneURL: "u"},
				want:  gitrepo.ErrInvalidInput,
			},
			"cross linkage": {
				input: gitrepo.RegisterInput{Provider: model.ProviderGitLab, Owner: "a", Name: "b", CloneURL: "u", GitHubRepoID: int64p(1)},
				want:  gitrepo.ErrInvalidInput,
			},
			"missing name": {
				input: gitrepo.RegisterInput{Provider: model.ProviderGitHub, Owner: "a", CloneURL: "u"},
				want:  gitrepo.ErrInvalidInput,
			},
			"short secret": {
				input: gitrepo.RegisterInput{Provider: model.ProviderGitHub, Owner: "a", Name: "b", CloneURL: "u", WebhookSecret: "short"},
				want:  gitrepo.ErrWebhookSecretTooWeak,
			},
		}
		for name, tc := range tests {
			t.Run(name, func(t *testing.T) {
				uc, _ := newTestUseCase()
				if _, err := uc.Register(ctx, tc.input); !errors.Is(err, tc.want) {
					t.Errorf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		uc, _ := newTestUseCase()
		in := gitrepo.RegisterInput{Provider: model.ProviderGitHub, Owner: "acme", Name: "api", CloneURL: "u"}
		if _, err := uc.Register(ctx, in); err != nil {
			t.Fatal(err)
		}
		if _, err := uc.Register(ctx, in); !errors.Is(err, gitrepo.ErrDuplicateRepository) {
			t.Errorf("expected ErrDuplicateRepository, got %v", err)
		}
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase()

	gh, _ := uc.Register(ctx, gitrepo.RegisterInput{
		Provider: model.ProviderGitHub, Owner: "acme", Name: "api", CloneURL: "u", GitHubRepoID: int64p(42),
	})
	gl, _ := uc.Register(ctx, gitrepo.RegisterInput{
		Provider: model.ProviderGitLab, Owner: "acme", Name: "api", CloneURL: "u", GitLabProjectID: int64p(42),
	})

	tests := map[string]struct {
		input  gitrepo.ResolveInput
		wantID string
	}{
		"by id":                   {gitrepo.ResolveInput{ID: gl.Repository.ID}, gl.Repository.ID},
		"by github numeric id":    {gitrepo.ResolveInput{Provider: model.ProviderGitHub, ProviderRepoID: 42}, gh.Repository.ID},
		"by gitlab numeric id":    {gitrepo.ResolveInput{Provider: model.ProviderGitLab, ProviderRepoID: 42}, gl.Repository.ID},
		"falls back to full name": {gitrepo.ResolveInput{Provider: model.ProviderGitHub, ProviderRepoID: 999, Owner: "ACME", Name: "api"}, gh.Repository.ID},
		"stale id falls through":  {gitrepo.ResolveInput{ID: "gone", Provider: model.ProviderGitLab, Owner: "acme", Name: "api"}, gl.Repository.ID},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec, err := uc.Resolve(ctx, tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.ID != tc.wantID {
				t.Errorf("resolved %s, want %s", rec.ID, tc.wantID)
			}
		})
	}

	t.Run("miss", func(t *testing.T) {
		_, err := uc.Resolve(ctx, gitrepo.ResolveInput{Provider: model.ProviderGitHub, Owner: "other", Name: "repo"})
		if !errors.Is(err, gitrepo.ErrRepositoryNotFound) {
			t.Errorf("expected ErrRepositoryNotFound, got %v", err)
		}
	})
}

func TestRotateAndDeactivate(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestUseCase()

	reg, _ := uc.Register(ctx, gitrepo.RegisterInput{
		Provider: model.ProviderGitLab, Owner: "grp", Name: "svc", CloneURL: "u", WebhookSecret: "first-secret-value-123",
	})

	out, err := uc.RotateSecret(ctx, reg.Repository.ID)
	if err != nil {
		t.Fatalf("RotateSecret: %v", err)
	}
	hmacHex := store.recs[0].WebhookSecretHMAC
	if encrypter.VerifyTokenHMAC(pepper, hmacHex, "first-secret-value-123") {
		t.Error("old secret still verifies after rotation")
	}
	if !encrypter.VerifyTokenHMAC(pepper, hmacHex, out.WebhookSecret) {
		t.Error("new secret does not verify")
	}
	if !out.VerifiesIntake {
		t.Error("rotated GitLab secret should verify intake")
	}

	rec, err := uc.Deactivate(ctx, reg.Repository.ID)
	if err != nil || rec.Active {
		t.Errorf("Deactivate: active=%v err=%v", rec.Active, err)
	}

	if _, err := uc.RotateSecret(ctx, "missing"); !errors.Is(err, gitrepo.ErrRepositoryNotFound) {
		t.Errorf("expected ErrRepositoryNotFound, got %v", err)
	}
	if _, err := uc.Deactivate(ctx, "missing"); !errors.Is(err, gitrepo.ErrRepositoryNotFound) {
		t.Errorf("expected ErrRepositoryNotFound, got %v", err)
	}
}
