package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrChurchNotFound is returned when a church id or place id does not exist,
// including inserts whose church_id foreign key has no parent row.
var ErrChurchNotFound = errors.New("church not found")

// ErrDuplicatePlace is returned when a church already exists for a place id.
var ErrDuplicatePlace = errors.New("church already exists for place id")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}
