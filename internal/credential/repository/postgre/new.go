package postgre

import (
	"database/sql"
	"fmt"

	"buildhook/internal/credential/repository"
	"buildhook/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a PostgreSQL-backed credential store.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("credential/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("credential/repository/postgre.%s", method)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
