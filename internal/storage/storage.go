package storage

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"labtrack-backend/internal/apperr"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Ping() error {
	return s.db.Ping()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// rowErr maps low-level query errors onto the taxonomy. Absent rows
// become ErrNotFound; everything else is an internal failure whose
// detail stays server-side.
func rowErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return apperr.Internal(err)
}

// writeErr maps errors from INSERT/UPDATE statements; unique-constraint
// violations surface as duplicates.
func writeErr(err error, what string) error {
	if isUniqueViolation(err) {
		return apperr.Duplicatef("%s already exists", what)
	}
	return apperr.Internal(err)
}
