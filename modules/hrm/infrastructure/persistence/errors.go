package persistence

import (
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgError hides server-side details of a PostgreSQL error from clients while
// keeping the full error for logs.
type pgError struct {
	err  error
	code string
}

func (e *pgError) Error() string       { return e.err.Error() }
func (e *pgError) Unwrap() error       { return e.err }
func (e *pgError) PublicCause() string { return "SQLSTATE " + e.code }

func wrap(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		err = &pgError{err: err, code: pgErr.Code}
	}
	return gerrors.Wrap(err, msg)
}
