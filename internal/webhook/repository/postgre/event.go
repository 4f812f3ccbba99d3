package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"buildhook/internal/model"
	repo "buildhook/internal/webhook/repository"
)

const (
	eventColumns = `id, repository_id, provider, event_type, delivery_id, payload, payload_digest,
	processed, error_message, received_at, processed_at`
	// summaryColumns keeps list responses small.
	summaryColumns = `id, repository_id, provider, event_type, delivery_id, NULL::bytea, payload_digest,
	processed, error_message, received_at, processed_at`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (model.WebhookEvent, error) {
	var (
		ev          model.WebhookEvent
		repoID      sql.NullString
		provider    string
		errMsg      sql.NullString
		processedAt sql.NullTime
	)
	err := row.Scan(&ev.ID, &repoID, &provider, &ev.EventType, &ev.DeliveryID, &ev.Payload, &ev.PayloadDigest,
		&ev.Processed, &errMsg, &ev.ReceivedAt, &processedAt)
	if err != nil {
		return model.WebhookEvent{}, err
	}
	ev.Provider = model.Provider(provider)
	if repoID.Valid {
		ev.RepositoryID = &repoID.String
	}
	if errMsg.Valid {
		ev.ErrorMessage = &errMsg.String
	}
	if processedAt.Valid {
		ev.ProcessedAt = &processedAt.Time
	}
	return ev, nil
}

// Create relies on the unique (provider, delivery_id) index: a conflicting
// insert returns no row.
func (r *implRepository) Create(ctx context.Context, opt repo.CreateOptions) (model.WebhookEvent, error) {
	query := `
		INSERT INTO webhook_events (repository_id, provider, event_type, delivery_id, payload, payload_digest,
			processed, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		ON CONFLICT (provider, delivery_id) DO NOTHING
		RETURNING ` + eventColumns

	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, opt.RepositoryID, string(opt.Provider), opt.EventType,
		opt.DeliveryID, opt.Payload, opt.PayloadDigest))
	if errors.Is(err, sql.ErrNoRows) {
		return model.WebhookEvent{}, repo.ErrDuplicate
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Create"), err)
		return model.WebhookEvent{}, repo.ErrFailedToInsert
	}
	return ev, nil
}

func (r *implRepository) GetOne(ctx context.Context, id string) (model.WebhookEvent, error) {
	ev, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM webhook_events WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.WebhookEvent{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOne"), err)
		return model.WebhookEvent{}, repo.ErrFailedToGet
	}
	return ev, nil
}

func (r *implRepository) List(ctx context.Context, opt repo.ListOptions) ([]model.WebhookEvent, int, error) {
	var conditions []string
	var args []any
	if opt.Provider != "" {
		args = append(args, string(opt.Provider))
		conditions = append(conditions, fmt.Sprintf("provider = $%d", len(args)))
	}
	if opt.RepositoryID != "" {
		args = append(args, opt.RepositoryID)
		conditions = append(conditions, fmt.Sprintf("repository_id = $%d", len(args)))
	}
	if opt.Processed != nil {
		args = append(args, *opt.Processed)
		conditions = append(conditions, fmt.Sprintf("processed = $%d", len(args)))
	}
	where := "1=1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM webhook_events WHERE "+where, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}

	query := fmt.Sprintf("SELECT %s FROM webhook_events WHERE %s ORDER BY received_at DESC", summaryColumns, where)
	if opt.Limit > 0 {
		args = append(args, opt.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opt.Offset > 0 {
		args = append(args, opt.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	out, err := r.query(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("List"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return out, total, nil
}

func (r *implRepository) ListUnprocessed(ctx context.Context) ([]model.WebhookEvent, error) {
	query := `SELECT ` + summaryColumns + ` FROM webhook_events WHERE processed = FALSE ORDER BY received_at ASC`
	out, err := r.query(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListUnprocessed"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}

func (r *implRepository) MarkProcessed(ctx context.Context, opt repo.MarkProcessedOptions) error {
	query := `
		UPDATE webhook_events
		SET processed = TRUE,
			processed_at = NOW(),
			error_message = $2,
			repository_id = COALESCE(repository_id, $3)
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, opt.ID, opt.ErrorMessage, opt.RepositoryID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("MarkProcessed"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

func (r *implRepository) query(ctx context.Context, query string, args ...any) ([]model.WebhookEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WebhookEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
