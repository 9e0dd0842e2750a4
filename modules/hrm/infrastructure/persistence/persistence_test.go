package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/composables"
	"github.com/iota-uz/deptemp/pkg/repo"
	"github.com/iota-uz/deptemp/pkg/serrors"
	"github.com/iota-uz/deptemp/pkg/types"
)

func TestEmployeeMapping_RoundTrip(t *testing.T) {
	mgr := 7839
	comm := decimal.RequireFromString("1400")
	e := employee.Hydrate(7654, "MARTIN", "SALESMAN", &mgr, types.NewDate(1981, time.September, 28),
		decimal.RequireFromString("1250.00"), &comm, 30)

	row := ToDBEmployee(e)
	require.True(t, row.Mgr.Valid)
	require.True(t, row.Comm.Valid)

	back := ToDomainEmployee(row)
	require.Equal(t, e.Empno(), back.Empno())
	require.Equal(t, mgr, *back.Mgr())
	require.True(t, comm.Equal(*back.Comm()))
	require.True(t, e.Hiredate().Equal(back.Hiredate()))
}

func TestEmployeeMapping_NullableColumns(t *testing.T) {
	e := employee.Hydrate(1, "SMITH", "CLERK", nil, types.NewDate(1980, time.December, 17),
		decimal.RequireFromString("800"), nil, 20)

	row := ToDBEmployee(e)
	require.False(t, row.Mgr.Valid)
	require.False(t, row.Comm.Valid)

	back := ToDomainEmployee(row)
	require.Nil(t, back.Mgr())
	require.Nil(t, back.Comm())
}

func TestEmployeeWhere(t *testing.T) {
	deptno, mgr := 10, 7839
	where := EmployeeWhere(&employee.FindParams{Deptno: &deptno, Mgr: &mgr}, repo.Dollar)
	require.Equal(t, "WHERE deptno = $1 AND mgr = $2", where.String())
	require.Equal(t, []any{10, 7839}, where.Args())

	require.Empty(t, EmployeeWhere(nil, repo.Dollar).String())

	self := 7839
	where = EmployeeWhere(&employee.FindParams{Mgr: &self, ExcludeEmpno: &self}, repo.Question)
	require.Equal(t, "WHERE mgr = ? AND empno <> ?", where.String())
	require.Equal(t, []any{7839, 7839}, where.Args())
}

func TestWrap_HidesPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Message:        `insert or update on table "emp" violates foreign key constraint "fk_emp_deptno"`,
		ConstraintName: "fk_emp_deptno",
	}
	err := wrap(pgErr, "failed to insert employee")

	var target *pgconn.PgError
	require.True(t, errors.As(err, &target))

	e := serrors.Store("insert employee", err)
	require.Equal(t, "Internal Server Error. [insert employee: SQLSTATE 23503]", e.Message())
	require.Contains(t, e.Error(), "fk_emp_deptno")
}

func TestRepositories_RequireConnection(t *testing.T) {
	_, err := NewDepartmentRepository(nil).GetAll(context.Background())
	require.ErrorIs(t, err, composables.ErrNoPool)

	_, err = NewEmployeeRepository(nil).Exists(context.Background(), nil)
	require.ErrorIs(t, err, composables.ErrNoPool)
}
