package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateKey reports a unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKey reports a reference to a row that does not exist.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrConstraint reports any other rejected row (not null, check).
	ErrConstraint = errors.New("constraint violation")
	// ErrStoreUnavailable wraps key-value store failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// classifyPgError maps constraint violations onto sentinel errors and
// returns nil for anything else.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return ErrDuplicateKey
	case pgForeignKeyViolation:
		return ErrForeignKey
	case pgNotNullViolation, pgCheckViolation:
		return ErrConstraint
	}
	return nil
}
