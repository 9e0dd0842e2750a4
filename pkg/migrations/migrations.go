// Package migrations embeds the schema for every SQL store and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) gooseDialect() (goose.Dialect, error) {
	switch d {
	case Postgres:
		return goose.DialectPostgres, nil
	case SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// Migrator applies the embedded migrations of one dialect to db.
type Migrator struct {
	provider *goose.Provider
	logger   *logrus.Entry
}

func New(db *sql.DB, dialect Dialect, logger *logrus.Logger) (*Migrator, error) {
	gd, err := dialect.gooseDialect()
	if err != nil {
		return nil, err
	}
	fsys, err := fs.Sub(files, string(dialect))
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return &Migrator{
		provider: provider,
		logger:   logger.WithField("component", "migrations").WithField("dialect", string(dialect)),
	}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.log(r)
	}
	return err
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if result != nil {
		m.log(result)
	}
	return err
}

type Status struct {
	Version int64
	Source  string
	Applied bool
}

func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

func (m *Migrator) log(r *goose.MigrationResult) {
	entry := m.logger.WithFields(logrus.Fields{
		"version":   r.Source.Version,
		"direction": r.Direction,
		"duration":  r.Duration.String(),
	})
	if r.Error != nil {
		entry.WithError(r.Error).Error("migration failed")
		return
	}
	entry.Info("migration applied")
}
