package postgre

import (
	"context"
	"database/sql"
	"errors"

	repo "buildhook/internal/credential/repository"
	"buildhook/internal/model"
)

const githubAppColumns = `id, app_id, private_key_ciphertext, private_key_nonce,
	webhook_secret_ciphertext, webhook_secret_nonce, active, created_at`

func scanGitHubApp(row rowScanner) (model.GitHubAppCredential, error) {
	var (
		rec         model.GitHubAppCredential
		secretCT    sql.NullString
		secretNonce sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.AppID, &rec.PrivateKeyCiphertext, &rec.PrivateKeyNonce,
		&secretCT, &secretNonce, &rec.Active, &rec.CreatedAt); err != nil {
		return model.GitHubAppCredential{}, err
	}
	rec.WebhookSecretCiphertext = nullString(secretCT)
	rec.WebhookSecretNonce = nullString(secretNonce)
	return rec, nil
}

func (r *implRepository) SetActiveGitHubApp(ctx context.Context, opt repo.CreateGitHubAppOptions) (model.GitHubAppCredential, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SetActiveGitHubApp"), err)
		return model.GitHubAppCredential{}, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE github_app_credentials SET active = FALSE WHERE active`); err != nil {
		r.l.Errorf(ctx, "%s deactivate: %v", r.dsn("SetActiveGitHubApp"), err)
		return model.GitHubAppCredential{}, repo.ErrFailedToInsert
	}

	query := `
		INSERT INTO github_app_credentials (app_id, private_key_ciphertext, private_key_nonce,
			webhook_secret_ciphertext, webhook_secret_nonce, active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		RETURNING ` + githubAppColumns
	rec, err := scanGitHubApp(tx.QueryRowContext(ctx, query, opt.AppID, opt.PrivateKeyCiphertext, opt.PrivateKeyNonce,
		opt.WebhookSecretCiphertext, opt.WebhookSecretNonce))
	if err != nil {
		r.l.Errorf(ctx, "%s insert: %v", r.dsn("SetActiveGitHubApp"), err)
		return model.GitHubAppCredential{}, repo.ErrFailedToInsert
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("SetActiveGitHubApp"), err)
		return model.GitHubAppCredential{}, repo.ErrFailedToInsert
	}
	return rec, nil
}

func (r *implRepository) GetActiveGitHubApp(ctx context.Context) (model.GitHubAppCredential, error) {
	query := `SELECT ` + githubAppColumns + ` FROM github_app_credentials WHERE active LIMIT 1`
	rec, err := scanGitHubApp(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return model.GitHubAppCredential{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetActiveGitHubApp"), err)
		return model.GitHubAppCredential{}, repo.ErrFailedToGet
	}
	return rec, nil
}

func (r *implRepository) UpsertInstallation(ctx context.Context, opt repo.UpsertInstallationOptions) (model.GitHubInstallation, error) {
	const query = `
		INSERT INTO github_installations (installation_id, account_login, app_credential_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (installation_id) DO UPDATE
			SET account_login = EXCLUDED.account_login, app_credential_id = EXCLUDED.app_credential_id
		RETURNING id, installation_id, account_login, app_credential_id, created_at`

	var rec model.GitHubInstallation
	err := r.db.QueryRowContext(ctx, query, opt.InstallationID, opt.AccountLogin, opt.AppCredentialID).Scan(
		&rec.ID, &rec.InstallationID, &rec.AccountLogin, &rec.AppCredentialID, &rec.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertInstallation"), err)
		return model.GitHubInstallation{}, repo.ErrFailedToInsert
	}
	return rec, nil
}

func (r *implRepository) ListInstallations(ctx context.Context) ([]model.GitHubInstallation, error) {
	const query = `
		SELECT id, installation_id, account_login, app_credential_id, created_at
		FROM github_installations ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListInstallations"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.GitHubInstallation
	for rows.Next() {
		var rec model.GitHubInstallation
		if err := rows.Scan(&rec.ID, &rec.InstallationID, &rec.AccountLogin, &rec.AppCredentialID, &rec.CreatedAt); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListInstallations"), err)
			return nil, repo.ErrFailedToList
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
