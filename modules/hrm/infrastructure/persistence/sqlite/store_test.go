package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/migrations"
	"github.com/iota-uz/deptemp/pkg/serrors"
	"github.com/iota-uz/deptemp/pkg/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "deptemp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	m, err := migrations.New(db.DB, migrations.SQLite, logger)
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))
	return NewStore(db)
}

func ptr[T any](v T) *T { return &v }

func clerk(ename string, deptno int, mgr *int) employee.Employee {
	comm := decimal.RequireFromString("300.5")
	return employee.New(ename, "CLERK", mgr, types.NewDate(1981, time.February, 20), decimal.RequireFromString("1600"), &comm, deptno)
}

func TestDepartmentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newStore(t).Departments()

	created, err := repo.Create(ctx, department.New("SALES", "CHICAGO"))
	require.NoError(t, err)
	require.Equal(t, 1, created.Deptno())

	_, err = repo.Update(ctx, department.Hydrate(created.Deptno(), "営業部", "TOKYO"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.Deptno())
	require.NoError(t, err)
	require.Equal(t, "営業部", got.Dname())

	_, err = repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, department.ErrNotFound)

	_, err = repo.Update(ctx, department.Hydrate(999, "X", "Y"))
	require.ErrorIs(t, err, department.ErrNotFound)

	n, err := repo.Delete(ctx, created.Deptno())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = repo.Delete(ctx, created.Deptno())
	require.NoError(t, err)
	require.Zero(t, n)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestEmployeeRepository_RoundTripAndPredicates(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	dept, err := store.Departments().Create(ctx, department.New("RESEARCH", "DALLAS"))
	require.NoError(t, err)
	emps := store.Employees()

	king, err := emps.Create(ctx, clerk("KING", dept.Deptno(), nil))
	require.NoError(t, err)
	ward, err := emps.Create(ctx, clerk("WARD", dept.Deptno(), ptr(king.Empno())))
	require.NoError(t, err)

	got, err := emps.GetByID(ctx, ward.Empno())
	require.NoError(t, err)
	require.Equal(t, "WARD", got.Ename())
	require.Equal(t, king.Empno(), *got.Mgr())
	require.Equal(t, "1981-02-20", got.Hiredate().String())
	require.Equal(t, "1600.00", got.Sal().StringFixed(2))
	require.Equal(t, "300.50", got.Comm().StringFixed(2))

	managed, err := emps.Exists(ctx, &employee.FindParams{Mgr: ptr(king.Empno())})
	require.NoError(t, err)
	require.True(t, managed)

	managed, err = emps.Exists(ctx, &employee.FindParams{Mgr: ptr(ward.Empno())})
	require.NoError(t, err)
	require.False(t, managed)

	managed, err = emps.Exists(ctx, &employee.FindParams{Mgr: ptr(king.Empno()), ExcludeEmpno: ptr(ward.Empno())})
	require.NoError(t, err)
	require.False(t, managed)

	inDept, err := emps.GetWhere(ctx, &employee.FindParams{Deptno: ptr(dept.Deptno())})
	require.NoError(t, err)
	require.Len(t, inDept, 2)
	require.Equal(t, king.Empno(), inDept[0].Empno())

	_, err = emps.GetByID(ctx, 999)
	require.ErrorIs(t, err, employee.ErrNotFound)
}

func TestSchema_ForeignKeysAreEnforced(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Employees().Create(ctx, clerk("ORPHAN", 42, nil))
	require.Error(t, err)

	e := serrors.Store("insert employee", err)
	require.Regexp(t, `^Internal Server Error\. \[insert employee: SQLITE \d+\]$`, e.Message())
}

func TestStore_InTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	boom := errors.New("boom")

	err := store.InTx(ctx, func(txCtx context.Context) error {
		if _, err := store.Departments().Create(txCtx, department.New("TEMP", "NOWHERE")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := store.Departments().GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestRepositories_PropagateDriverFailures(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	store := NewStore(sqlx.NewDb(mockDB, driverName))

	mock.ExpectQuery("SELECT deptno, dname, loc FROM dept").WillReturnError(errors.New("disk I/O error"))
	_, err = store.Departments().GetAll(context.Background())
	require.ErrorContains(t, err, "disk I/O error")

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM emp WHERE deptno = \?\)`).
		WithArgs(10).
		WillReturnError(errors.New("database is locked"))
	_, err = store.Employees().Exists(context.Background(), &employee.FindParams{Deptno: ptr(10)})
	require.ErrorContains(t, err, "database is locked")

	mock.ExpectExec(`UPDATE emp SET mgr = NULL WHERE empno = \? AND mgr = empno`).WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM emp").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))
	n, err := store.Employees().Delete(context.Background(), 7)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, mock.ExpectationsWereMet())
}
