package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/models"
	"github.com/iota-uz/deptemp/pkg/repo"
)

const (
	employeeFindQuery   = `SELECT empno, ename, job, mgr, hiredate, sal, comm, deptno FROM emp`
	employeeInsertQuery = `INSERT INTO emp (ename, job, mgr, hiredate, sal, comm, deptno) VALUES (?, ?, ?, ?, ?, ?, ?)`
	employeeUpdateQuery = `
		UPDATE emp
		SET ename = ?, job = ?, mgr = ?, hiredate = ?, sal = ?, comm = ?, deptno = ?
		WHERE empno = ?
	`
	// A self reference would trip the RESTRICT key on mgr.
	employeeClearSelfMgrQuery = `UPDATE emp SET mgr = NULL WHERE empno = ? AND mgr = empno`
	employeeDeleteQuery       = `DELETE FROM emp WHERE empno = ?`
)

type EmployeeRepository struct {
	db *sqlx.DB
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return r.GetWhere(ctx, nil)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, empno int) (employee.Employee, error) {
	var row models.Employee
	err := sqlx.GetContext(ctx, useTx(ctx, r.db), &row, employeeFindQuery+" WHERE empno = ?", empno)
	if errors.Is(err, sql.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}
	if err != nil {
		return employee.Employee{}, wrap(err, "failed to get employee")
	}
	return persistence.ToDomainEmployee(&row), nil
}

func (r *EmployeeRepository) GetWhere(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	where := persistence.EmployeeWhere(params, repo.Question)
	query := repo.Join(employeeFindQuery, where.String(), "ORDER BY empno")

	var rows []models.Employee
	if err := sqlx.SelectContext(ctx, useTx(ctx, r.db), &rows, query, where.Args()...); err != nil {
		return nil, wrap(err, "failed to select employees")
	}
	out := make([]employee.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, persistence.ToDomainEmployee(&rows[i]))
	}
	return out, nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, params *employee.FindParams) (bool, error) {
	where := persistence.EmployeeWhere(params, repo.Question)
	query := repo.Exists(repo.Join("SELECT 1 FROM emp", where.String()))

	var exists bool
	if err := sqlx.GetContext(ctx, useTx(ctx, r.db), &exists, query, where.Args()...); err != nil {
		return false, wrap(err, "failed to check employee existence")
	}
	return exists, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	res, err := useTx(ctx, r.db).ExecContext(ctx, employeeInsertQuery, employeeArgs(e)...)
	if err != nil {
		return employee.Employee{}, wrap(err, "failed to insert employee")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return employee.Employee{}, wrap(err, "failed to read employee id")
	}
	return e.WithEmpno(int(id)), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	res, err := useTx(ctx, r.db).ExecContext(ctx, employeeUpdateQuery, append(employeeArgs(e), e.Empno())...)
	if err != nil {
		return employee.Employee{}, wrap(err, "failed to update employee")
	}
	if n, err := res.RowsAffected(); err != nil {
		return employee.Employee{}, wrap(err, "failed to read affected rows")
	} else if n == 0 {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, empno int) (int64, error) {
	tx := useTx(ctx, r.db)
	if _, err := tx.ExecContext(ctx, employeeClearSelfMgrQuery, empno); err != nil {
		return 0, wrap(err, "failed to clear self reference")
	}
	res, err := tx.ExecContext(ctx, employeeDeleteQuery, empno)
	if err != nil {
		return 0, wrap(err, "failed to delete employee")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(err, "failed to read affected rows")
	}
	return n, nil
}

func employeeArgs(e employee.Employee) []any {
	m := persistence.ToDBEmployee(e)
	var comm sql.NullString
	if m.Comm.Valid {
		comm = sql.NullString{String: m.Comm.Decimal.StringFixed(2), Valid: true}
	}
	return []any{
		m.Ename,
		m.Job,
		m.Mgr,
		m.Hiredate.String(),
		m.Sal.StringFixed(2),
		comm,
		m.Deptno,
	}
}
