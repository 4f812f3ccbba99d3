package postgre

import (
	"database/sql"
	"fmt"

	"buildhook/internal/webhook/repository"
	"buildhook/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a PostgreSQL-backed webhook event store.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("webhook/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("webhook/repository/postgre.%s", method)
}
