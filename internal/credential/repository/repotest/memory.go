// Package repotest provides an in-memory credential store for tests.
package repotest

import (
	"context"
	"strconv"
	"sync"
	"time"

	repo "buildhook/internal/credential/repository"
	"buildhook/internal/model"
)

// Memory implements repository.Repository in memory. UpdateTokensCalls counts
// successful token updates.
type Memory struct {
	mu  sync.Mutex
	seq int

	Apps          []model.GitHubAppCredential
	Installations []model.GitHubInstallation
	GitLabApps    map[string]model.GitLabOAuthApp
	Credentials   map[string]model.GitLabCredential
	Projects      map[string]model.GitLabEnabledProject

	UpdateTokensCalls int
}

var _ repo.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		GitLabApps:  map[string]model.GitLabOAuthApp{},
		Credentials: map[string]model.GitLabCredential{},
		Projects:    map[string]model.GitLabEnabledProject{},
	}
}

func (m *Memory) nextID(prefix string) string {
	m.seq++
	return prefix + "-" + strconv.Itoa(m.seq)
}

func (m *Memory) SetActiveGitHubApp(ctx context.Context, opt repo.CreateGitHubAppOptions) (model.GitHubAppCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Apps {
		m.Apps[i].Active = false
	}
	rec := model.GitHubAppCredential{
		ID:                      m.nextID("app"),
		AppID:                   opt.AppID,
		PrivateKeyCiphertext:    opt.PrivateKeyCiphertext,
		PrivateKeyNonce:         opt.PrivateKeyNonce,
		WebhookSecretCiphertext: opt.WebhookSecretCiphertext,
		WebhookSecretNonce:      opt.WebhookSecretNonce,
		Active:                  true,
		CreatedAt:               time.Now(),
	}
	m.Apps = append(m.Apps, rec)
	return rec, nil
}

func (m *Memory) GetActiveGitHubApp(ctx context.Context) (model.GitHubAppCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Apps {
		if a.Active {
			return a, nil
		}
	}
	return model.GitHubAppCredential{}, nil
}

func (m *Memory) UpsertInstallation(ctx context.Context, opt repo.UpsertInstallationOptions) (model.GitHubInstallation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, inst := range m.Installations {
		if inst.InstallationID == opt.InstallationID {
			m.Installations[i].AccountLogin = opt.AccountLogin
			m.Installations[i].AppCredentialID = opt.AppCredentialID
			return m.Installations[i], nil
		}
	}
	rec := model.GitHubInstallation{
		ID:              m.nextID("inst"),
		InstallationID:  opt.InstallationID,
		AccountLogin:    opt.AccountLogin,
		AppCredentialID: opt.AppCredentialID,
		CreatedAt:       time.Now(),
	}
	m.Installations = append(m.Installations, rec)
	return rec, nil
}

func (m *Memory) ListInstallations(ctx context.Context) ([]model.GitHubInstallation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.GitHubInstallation(nil), m.Installations...), nil
}

func (m *Memory) UpsertGitLabApp(ctx context.Context, opt repo.UpsertGitLabAppOptions) (model.GitLabOAuthApp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.GitLabApps[opt.InstanceURL]
	if !ok {
		rec = model.GitLabOAuthApp{ID: m.nextID("glapp"), InstanceURL: opt.InstanceURL, CreatedAt: time.Now()}
	}
	rec.ClientID = opt.ClientID
	rec.ClientSecretCiphertext = opt.ClientSecretCiphertext
	rec.ClientSecretNonce = opt.ClientSecretNonce
	m.GitLabApps[opt.InstanceURL] = rec
	return rec, nil
}

func (m *Memory) GetGitLabApp(ctx context.Context, instanceURL string) (model.GitLabOAuthApp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GitLabApps[instanceURL], nil
}

func (m *Memory) UpsertGitLabCredential(ctx context.Context, opt repo.UpsertGitLabCredentialOptions) (model.GitLabCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rec model.GitLabCredential
	for _, c := range m.Credentials {
		if c.InstanceURL == opt.InstanceURL && c.AccountUsername == opt.AccountUsername {
			rec = c
		}
	}
	if rec.ID == "" {
		rec = model.GitLabCredential{ID: m.nextID("glcred"), InstanceURL: opt.InstanceURL, AccountUsername: opt.AccountUsername, CreatedAt: time.Now()}
	}
	rec.AccessTokenCiphertext = opt.AccessTokenCiphertext
	rec.AccessTokenNonce = opt.AccessTokenNonce
	rec.RefreshTokenCiphertext = opt.RefreshTokenCiphertext
	rec.RefreshTokenNonce = opt.RefreshTokenNonce
	rec.ExpiresAt = opt.ExpiresAt
	rec.UpdatedAt = time.Now()
	m.Credentials[rec.ID] = rec
	return rec, nil
}

func (m *Memory) GetGitLabCredential(ctx context.Context, id string) (model.GitLabCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Credentials[id], nil
}

func (m *Memory) DeleteGitLabCredential(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Credentials[id]; !ok {
		return false, nil
	}
	delete(m.Credentials, id)
	for repoID, p := range m.Projects {
		if p.CredentialID == id {
			delete(m.Projects, repoID)
		}
	}
	return true, nil
}

func (m *Memory) UpdateGitLabTokens(ctx context.Context, opt repo.UpdateGitLabTokensOptions) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.Credentials[opt.ID]
	if !ok || !sameTime(rec.ExpiresAt, opt.PrevExpiresAt) {
		return false, nil
	}
	rec.AccessTokenCiphertext = opt.AccessTokenCiphertext
	rec.AccessTokenNonce = opt.AccessTokenNonce
	rec.RefreshTokenCiphertext = opt.RefreshTokenCiphertext
	rec.RefreshTokenNonce = opt.RefreshTokenNonce
	rec.ExpiresAt = opt.ExpiresAt
	rec.UpdatedAt = time.Now()
	m.Credentials[opt.ID] = rec
	m.UpdateTokensCalls++
	return true, nil
}

func (m *Memory) UpsertEnabledProject(ctx context.Context, opt repo.UpsertEnabledProjectOptions) (model.GitLabEnabledProject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.Projects[opt.RepositoryID]
	if !ok {
		rec = model.GitLabEnabledProject{ID: m.nextID("proj"), RepositoryID: opt.RepositoryID, CreatedAt: time.Now()}
	}
	rec.CredentialID = opt.CredentialID
	rec.ProjectID = opt.ProjectID
	m.Projects[opt.RepositoryID] = rec
	return rec, nil
}

func (m *Memory) GetEnabledProjectByRepository(ctx context.Context, repositoryID string) (model.GitLabEnabledProject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Projects[repositoryID], nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
