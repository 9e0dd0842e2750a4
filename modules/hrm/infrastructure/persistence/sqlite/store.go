// Package sqlite is the embedded SQL backend built on sqlx and the pure-Go
// modernc driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/repo"
)

const driverName = "sqlite"

var (
	_ repo.Transactor = (*Store)(nil)
	_ repo.Pinger     = (*Store)(nil)
)

type txKey struct{}

// Open connects to the database file at path with foreign keys enforced.
// In-memory databases are pinned to a single connection so they survive between calls.
func Open(path string) (*sqlx.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(path, ":memory:") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}
	return db, nil
}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Departments() department.Repository {
	return &DepartmentRepository{db: s.db}
}

func (s *Store) Employees() employee.Repository {
	return &EmployeeRepository{db: s.db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InTx runs fn inside a transaction. A transaction already present in ctx is reused.
func (s *Store) InTx(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap(err, "failed to begin transaction")
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return errors.Join(err, rErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrap(err, "failed to commit transaction")
	}
	return nil
}

func useTx(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// sqliteError exposes only the result code of a driver error to clients.
type sqliteError struct {
	err  error
	code int
}

func (e *sqliteError) Error() string       { return e.err.Error() }
func (e *sqliteError) Unwrap() error       { return e.err }
func (e *sqliteError) PublicCause() string { return fmt.Sprintf("SQLITE %d", e.code) }

func wrap(err error, msg string) error {
	var driverErr *sqlite.Error
	if errors.As(err, &driverErr) {
		err = &sqliteError{err: err, code: driverErr.Code()}
	}
	return gerrors.Wrap(err, msg)
}
