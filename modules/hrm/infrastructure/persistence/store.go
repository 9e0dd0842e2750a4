package persistence

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/composables"
	"github.com/iota-uz/deptemp/pkg/configuration"
	"github.com/iota-uz/deptemp/pkg/logging"
	"github.com/iota-uz/deptemp/pkg/repo"
)

var (
	_ repo.Transactor = (*Store)(nil)
	_ repo.Pinger     = (*Store)(nil)
)

// Store is the PostgreSQL backend. Repositories join the transaction carried
// by the context and fall back to the pool otherwise.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Departments() department.Repository {
	return NewDepartmentRepository(s.pool)
}

func (s *Store) Employees() employee.Repository {
	return NewEmployeeRepository(s.pool)
}

func (s *Store) InTx(ctx context.Context, fn func(context.Context) error) error {
	if err := composables.InTx(composables.WithPool(ctx, s.pool), fn); err != nil {
		return wrap(err, "transaction")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// NewPool opens a pgx pool configured with the SQL logger and statement timeout.
func NewPool(ctx context.Context, conf *configuration.Configuration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(conf.Database.Opts)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = conf.Database.MaxConns
	if timeout := conf.Database.StatementTimeout; timeout > 0 {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(timeout.Milliseconds(), 10)
	}
	cfg.ConnConfig.Tracer = logging.NewPgxTracer(conf.Logger(), conf.PgxLogLevel())
	return pgxpool.NewWithConfig(ctx, cfg)
}

func useTx(ctx context.Context, pool *pgxpool.Pool) (composables.Tx, error) {
	if tx, err := composables.UseTx(ctx); err == nil {
		return tx, nil
	}
	if pool == nil {
		return nil, composables.ErrNoPool
	}
	return pool, nil
}
