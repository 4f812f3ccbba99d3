package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	repo "buildhook/internal/gitrepo/repository"
	"buildhook/internal/model"
)

const selectColumns = `id, provider, owner, name, clone_url, default_branch, active,
	github_repo_id, github_installation_id, gitlab_project_id, webhook_secret_hmac,
	created_at, updated_at`

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepository(row rowScanner) (model.Repository, error) {
	var (
		rec            model.Repository
		provider       string
		ghRepoID       sql.NullInt64
		ghInstallation sql.NullInt64
		glProjectID    sql.NullInt64
	)
	err := row.Scan(
		&rec.ID, &provider, &rec.Owner, &rec.Name, &rec.CloneURL, &rec.DefaultBranch, &rec.Active,
		&ghRepoID, &ghInstallation, &glProjectID, &rec.WebhookSecretHMAC,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return model.Repository{}, err
	}
	rec.Provider = model.Provider(provider)
	rec.GitHubRepoID = int64Ptr(ghRepoID)
	rec.GitHubInstallationID = int64Ptr(ghInstallation)
	rec.GitLabProjectID = int64Ptr(glProjectID)
	return rec, nil
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// Create inserts a repository. Returns repo.ErrDuplicate when (provider, owner, name) is taken.
func (r *implRepository) Create(ctx context.Context, opt repo.CreateOptions) (model.Repository, error) {
	query := `
		INSERT INTO repositories (provider, owner, name, clone_url, default_branch, active,
			github_repo_id, github_installation_id, gitlab_project_id, webhook_secret_hmac, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + selectColumns

	rec, err := scanRepository(r.db.QueryRowContext(ctx, query,
		string(opt.Provider), opt.Owner, opt.Name, opt.CloneURL, opt.DefaultBranch,
		opt.GitHubRepoID, opt.GitHubInstallationID, opt.GitLabProjectID, opt.WebhookSecretHMAC,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.Repository{}, repo.ErrDuplicate
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("Create"), err)
		return model.Repository{}, repo.ErrFailedToInsert
	}
	return rec, nil
}

// GetOne returns the zero value when nothing matches.
func (r *implRepository) GetOne(ctx context.Context, opt repo.GetOneOptions) (model.Repository, error) {
	mods, args := r.buildGetOneQuery(opt)
	query := fmt.Sprintf("SELECT %s FROM repositories WHERE %s ORDER BY created_at LIMIT 1", selectColumns, mods)

	rec, err := scanRepository(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Repository{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOne"), err)
		return model.Repository{}, repo.ErrFailedToGet
	}
	return rec, nil
}

func (r *implRepository) List(ctx context.Context, opt repo.ListOptions) ([]model.Repository, int, error) {
	where, args := r.buildListFilter(opt)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM repositories WHERE "+where, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}

	query := fmt.Sprintf("SELECT %s FROM repositories WHERE %s ORDER BY created_at DESC", selectColumns, where)
	query, args = appendPagination(query, args, opt.Limit, opt.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Repository
	for rows.Next() {
		rec, err := scanRepository(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("List"), err)
			return nil, 0, repo.ErrFailedToList
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return out, total, nil
}

func (r *implRepository) UpdateSecretHMAC(ctx context.Context, id, secretHMAC string) (model.Repository, error) {
	query := `
		UPDATE repositories SET webhook_secret_hmac = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + selectColumns

	rec, err := scanRepository(r.db.QueryRowContext(ctx, query, secretHMAC, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Repository{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateSecretHMAC"), err)
		return model.Repository{}, repo.ErrFailedToUpdate
	}
	return rec, nil
}

func (r *implRepository) Deactivate(ctx context.Context, id string) (model.Repository, error) {
	query := `
		UPDATE repositories SET active = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + selectColumns

	rec, err := scanRepository(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Repository{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Deactivate"), err)
		return model.Repository{}, repo.ErrFailedToUpdate
	}
	return rec, nil
}
