package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	repo "buildhook/internal/build/repository"
	"buildhook/internal/model"
)

const buildColumns = `id, repository_id, webhook_event_id, commit_sha, branch, trigger_type, status,
	started_at, finished_at, workflow_name, config_source, error_message, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (model.Build, error) {
	var (
		b          model.Build
		eventID    sql.NullString
		trigger    string
		status     string
		startedAt  sql.NullTime
		finishedAt sql.NullTime
		errMsg     sql.NullString
	)
	err := row.Scan(&b.ID, &b.RepositoryID, &eventID, &b.CommitSHA, &b.Branch, &trigger, &status,
		&startedAt, &finishedAt, &b.WorkflowName, &b.ConfigSource, &errMsg, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Build{}, err
	}
	b.TriggerType = model.TriggerType(trigger)
	b.Status = model.BuildStatus(status)
	if eventID.Valid {
		b.WebhookEventID = &eventID.String
	}
	if startedAt.Valid {
		b.StartedAt = &startedAt.Time
	}
	if finishedAt.Valid {
		b.FinishedAt = &finishedAt.Time
	}
	if errMsg.Valid {
		b.ErrorMessage = &errMsg.String
	}
	return b, nil
}

func (r *implRepository) Create(ctx context.Context, opt repo.CreateOptions) (model.Build, error) {
	query := `
		INSERT INTO builds (repository_id, webhook_event_id, commit_sha, branch, trigger_type, status,
			workflow_name, config_source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7, NOW(), NOW())
		RETURNING ` + buildColumns

	b, err := scanBuild(r.db.QueryRowContext(ctx, query, opt.RepositoryID, opt.WebhookEventID, opt.CommitSHA,
		opt.Branch, string(opt.TriggerType), opt.WorkflowName, opt.ConfigSource))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Create"), err)
		return model.Build{}, repo.ErrFailedToInsert
	}
	return b, nil
}

func (r *implRepository) GetOne(ctx context.Context, id string) (model.Build, error) {
	b, err := scanBuild(r.db.QueryRowContext(ctx, `SELECT `+buildColumns+` FROM builds WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOne"), err)
		return model.Build{}, repo.ErrFailedToGet
	}
	return b, nil
}

func (r *implRepository) List(ctx context.Context, opt repo.ListOptions) ([]model.Build, int, error) {
	var conditions []string
	var args []any
	if opt.RepositoryID != "" {
		args = append(args, opt.RepositoryID)
		conditions = append(conditions, fmt.Sprintf("repository_id = $%d", len(args)))
	}
	if opt.Status != "" {
		args = append(args, string(opt.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := "1=1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM builds WHERE "+where, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}

	query := fmt.Sprintf("SELECT %s FROM builds WHERE %s ORDER BY created_at DESC", buildColumns, where)
	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opt.Offset > 0 {
		args = append(args, opt.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("List"), err)
			return nil, 0, repo.ErrFailedToList
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return out, total, nil
}

// UpdateStatus sets started_at on entering running and finished_at on entering a terminal state.
func (r *implRepository) UpdateStatus(ctx context.Context, opt repo.UpdateStatusOptions) (model.Build, error) {
	query := `
		UPDATE builds SET
			status = $1::text,
			error_message = COALESCE($2::text, error_message),
			started_at = CASE WHEN $1::text = 'running' THEN NOW() ELSE started_at END,
			finished_at = CASE WHEN $1::text IN ('success', 'failure', 'cancelled') THEN NOW() ELSE finished_at END,
			updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING ` + buildColumns

	b, err := scanBuild(r.db.QueryRowContext(ctx, query, string(opt.To), opt.ErrorMessage, opt.ID, string(opt.From)))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateStatus"), err)
		return model.Build{}, repo.ErrFailedToUpdate
	}
	return b, nil
}

func (r *implRepository) CancelActive(ctx context.Context, id string) (model.Build, error) {
	query := `
		UPDATE builds SET status = 'cancelled', finished_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'running')
		RETURNING ` + buildColumns

	b, err := scanBuild(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Build{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CancelActive"), err)
		return model.Build{}, repo.ErrFailedToUpdate
	}
	return b, nil
}
