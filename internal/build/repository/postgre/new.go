package postgre

import (
	"database/sql"
	"fmt"

	"buildhook/internal/build/repository"
	"buildhook/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a PostgreSQL-backed build store.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("build/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("build/repository/postgre.%s", method)
}
