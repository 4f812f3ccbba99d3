package postgre

import (
	"context"
	"database/sql"
	"errors"

	repo "buildhook/internal/credential/repository"
	"buildhook/internal/model"
)

const gitlabCredentialColumns = `id, instance_url, account_username, access_token_ciphertext, access_token_nonce,
	refresh_token_ciphertext, refresh_token_nonce, expires_at, created_at, updated_at`

func scanGitLabCredential(row rowScanner) (model.GitLabCredential, error) {
	var (
		rec          model.GitLabCredential
		refreshCT    sql.NullString
		refreshNonce sql.NullString
		expiresAt    sql.NullTime
	)
	if err := row.Scan(&rec.ID, &rec.InstanceURL, &rec.AccountUsername, &rec.AccessTokenCiphertext, &rec.AccessTokenNonce,
		&refreshCT, &refreshNonce, &expiresAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return model.GitLabCredential{}, err
	}
	rec.RefreshTokenCiphertext = nullString(refreshCT)
	rec.RefreshTokenNonce = nullString(refreshNonce)
	if expiresAt.Valid {
		t := expiresAt.Time
		rec.ExpiresAt = &t
	}
	return rec, nil
}

func (r *implRepository) UpsertGitLabApp(ctx context.Context, opt repo.UpsertGitLabAppOptions) (model.GitLabOAuthApp, error) {
	const query = `
		INSERT INTO gitlab_oauth_apps (instance_url, client_id, client_secret_ciphertext, client_secret_nonce, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (instance_url) DO UPDATE
			SET client_id = EXCLUDED.client_id,
				client_secret_ciphertext = EXCLUDED.client_secret_ciphertext,
				client_secret_nonce = EXCLUDED.client_secret_nonce
		RETURNING id, instance_url, client_id, client_secret_ciphertext, client_secret_nonce, created_at`

	var rec model.GitLabOAuthApp
	err := r.db.QueryRowContext(ctx, query, opt.InstanceURL, opt.ClientID, opt.ClientSecretCiphertext, opt.ClientSecretNonce).Scan(
		&rec.ID, &rec.InstanceURL, &rec.ClientID, &rec.ClientSecretCiphertext, &rec.ClientSecretNonce, &rec.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertGitLabApp"), err)
		return model.GitLabOAuthApp{}, repo.ErrFailedToInsert
	}
	return rec, nil
}

func (r *implRepository) GetGitLabApp(ctx context.Context, instanceURL string) (model.GitLabOAuthApp, error) {
	const query = `
		SELECT id, instance_url, client_id, client_secret_ciphertext, client_secret_nonce, created_at
		FROM gitlab_oauth_apps WHERE instance_url = $1`

	var rec model.GitLabOAuthApp
	err := r.db.QueryRowContext(ctx, query, instanceURL).Scan(
		&rec.ID, &rec.InstanceURL, &rec.ClientID, &rec.ClientSecretCiphertext, &rec.ClientSecretNonce, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.GitLabOAuthApp{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetGitLabApp"), err)
		return model.GitLabOAuthApp{}, repo.ErrFailedToGet
	}
	return rec, nil
}

func (r *implRepository) UpsertGitLabCredential(ctx context.Context, opt repo.UpsertGitLabCredentialOptions) (model.GitLabCredential, error) {
	query := `
		INSERT INTO gitlab_credentials (instance_url, account_username, access_token_ciphertext, access_token_nonce,
			refresh_token_ciphertext, refresh_token_nonce, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (instance_url, account_username) DO UPDATE
			SET access_token_ciphertext = EXCLUDED.access_token_ciphertext,
				access_token_nonce = EXCLUDED.access_token_nonce,
				refresh_token_ciphertext = EXCLUDED.refresh_token_ciphertext,
				refresh_token_nonce = EXCLUDED.refresh_token_nonce,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
		RETURNING ` + gitlabCredentialColumns

	rec, err := scanGitLabCredential(r.db.QueryRowContext(ctx, query, opt.InstanceURL, opt.AccountUsername,
		opt.AccessTokenCiphertext, opt.AccessTokenNonce, opt.RefreshTokenCiphertext, opt.RefreshTokenNonce, opt.ExpiresAt))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertGitLabCredential"), err)
		return model.GitLabCredential{}, repo.ErrFailedToInsert
	}
	return rec, nil
}

func (r *implRepository) GetGitLabCredential(ctx context.Context, id string) (model.GitLabCredential, error) {
	query := `SELECT ` + gitlabCredentialColumns + ` FROM gitlab_credentials WHERE id = $1`
	rec, err := scanGitLabCredential(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.GitLabCredential{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetGitLabCredential"), err)
		return model.GitLabCredential{}, repo.ErrFailedToGet
	}
	return rec, nil
}

func (r *implRepository) DeleteGitLabCredential(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("DeleteGitLabCredential"), err)
		return false, repo.ErrFailedToDelete
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gitlab_enabled_projects WHERE credential_id = $1`, id); err != nil {
		r.l.Errorf(ctx, "%s links: %v", r.dsn("DeleteGitLabCredential"), err)
		return false, repo.ErrFailedToDelete
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM gitlab_credentials WHERE id = $1`, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteGitLabCredential"), err)
		return false, repo.ErrFailedToDelete
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("DeleteGitLabCredential"), err)
		return false, repo.ErrFailedToDelete
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("DeleteGitLabCredential"), err)
		return false, repo.ErrFailedToDelete
	}
	return n > 0, nil
}

func (r *implRepository) UpdateGitLabTokens(ctx context.Context, opt repo.UpdateGitLabTokensOptions) (bool, error) {
	const query = `
		UPDATE gitlab_credentials
		SET access_token_ciphertext = $1, access_token_nonce = $2,
			refresh_token_ciphertext = $3, refresh_token_nonce = $4,
			expires_at = $5, updated_at = NOW()
		WHERE id = $6 AND expires_at IS NOT DISTINCT FROM $7`

	res, err := r.db.ExecContext(ctx, query, opt.AccessTokenCiphertext, opt.AccessTokenNonce,
		opt.RefreshTokenCiphertext, opt.RefreshTokenNonce, opt.ExpiresAt, opt.ID, opt.PrevExpiresAt)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateGitLabTokens"), err)
		return false, repo.ErrFailedToUpdate
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("UpdateGitLabTokens"), err)
		return false, repo.ErrFailedToUpdate
	}
	return n == 1, nil
}

func (r *implRepository) UpsertEnabledProject(ctx context.Context, opt repo.UpsertEnabledProjectOptions) (model.GitLabEnabledProject, error) {
	const query = `
		INSERT INTO gitlab_enabled_projects (repository_id, credential_id, project_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (repository_id) DO UPDATE
			SET credential_id = EXCLUDED.credential_id, project_id = EXCLUDED.project_id
		RETURNING id, repository_id, credential_id, project_id, created_at`

	var rec model.GitLabEnabledProject
	err := r.db.QueryRowContext(ctx, query, opt.RepositoryID, opt.CredentialID, opt.ProjectID).Scan(
		&rec.ID, &rec.RepositoryID, &rec.CredentialID, &rec.ProjectID, &rec.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertEnabledProject"), err)
		return model.GitLabEnabledProject{}, repo.ErrFailedToInsert
	}
	return rec, nil
}

func (r *implRepository) GetEnabledProjectByRepository(ctx context.Context, repositoryID string) (model.GitLabEnabledProject, error) {
	const query = `
		SELECT id, repository_id, credential_id, project_id, created_at
		FROM gitlab_enabled_projects WHERE repository_id = $1`

	var rec model.GitLabEnabledProject
	err := r.db.QueryRowContext(ctx, query, repositoryID).Scan(
		&rec.ID, &rec.RepositoryID, &rec.CredentialID, &rec.ProjectID, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.GitLabEnabledProject{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetEnabledProjectByRepository"), err)
		return model.GitLabEnabledProject{}, repo.ErrFailedToGet
	}
	return rec, nil
}
