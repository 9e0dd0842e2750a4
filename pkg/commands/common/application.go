// Package common opens the configured store and builds an application the
// same way for the server and the CLI.
package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/sqlite"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/configuration"
	"github.com/iota-uz/deptemp/pkg/migrations"
)

// Handles are the open store connections for the configured driver. At most
// one of Pool and SQLite is set; both are nil for the memory driver.
type Handles struct {
	Driver string
	Pool   *pgxpool.Pool
	SQLite *sqlx.DB
}

func OpenHandles(ctx context.Context, conf *configuration.Configuration) (*Handles, error) {
	h := &Handles{Driver: conf.Database.Driver}
	switch conf.Database.Driver {
	case configuration.DriverPostgres:
		pool, err := persistence.NewPool(ctx, conf)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		h.Pool = pool
	case configuration.DriverSQLite:
		db, err := sqlite.Open(conf.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", conf.Database.SQLitePath, err)
		}
		h.SQLite = db
	}
	return h, nil
}

// Migrator returns a migrator for the SQL store, or nil for the memory driver.
// The returned close function releases any connection opened for it.
func (h *Handles) Migrator(conf *configuration.Configuration) (*migrations.Migrator, func(), error) {
	var (
		db      *sql.DB
		dialect migrations.Dialect
		closeFn = func() {}
	)
	switch {
	case h.Pool != nil:
		db = stdlib.OpenDBFromPool(h.Pool)
		dialect = migrations.Postgres
		closeFn = func() { _ = db.Close() }
	case h.SQLite != nil:
		db = h.SQLite.DB
		dialect = migrations.SQLite
	default:
		return nil, closeFn, nil
	}
	m, err := migrations.New(db, dialect, conf.Logger())
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return m, closeFn, nil
}

func (h *Handles) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.SQLite != nil {
		_ = h.SQLite.Close()
	}
}

// NewApplication registers mods on an application backed by h.
func NewApplication(conf *configuration.Configuration, h *Handles, mods ...application.Module) (application.Application, error) {
	app := application.New(&application.ApplicationOptions{
		Pool:   h.Pool,
		SQLite: h.SQLite,
		Driver: h.Driver,
		Logger: conf.Logger(),
	})
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return nil, fmt.Errorf("failed to register module %s: %w", module.Name(), err)
		}
	}
	return app, nil
}
