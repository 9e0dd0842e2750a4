package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/models"
	"github.com/iota-uz/deptemp/pkg/repo"
)

const (
	employeeFindQuery = `SELECT empno, ename, job, mgr, hiredate, sal::text, comm::text, deptno FROM emp`

	employeeInsertQuery = `
		INSERT INTO emp (ename, job, mgr, hiredate, sal, comm, deptno)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING empno
	`
	employeeUpdateQuery = `
		UPDATE emp
		SET ename = $1, job = $2, mgr = $3, hiredate = $4, sal = $5, comm = $6, deptno = $7
		WHERE empno = $8
	`
	// A self reference would trip the RESTRICT key on mgr.
	employeeClearSelfMgrQuery = `UPDATE emp SET mgr = NULL WHERE empno = $1 AND mgr = empno`
	employeeDeleteQuery       = `DELETE FROM emp WHERE empno = $1`
)

// EmployeeWhere turns find params into SQL predicates.
func EmployeeWhere(params *employee.FindParams, placeholder repo.Placeholder) *repo.Where {
	where := repo.NewWhere(placeholder)
	if params == nil {
		return where
	}
	if params.Deptno != nil {
		where.Eq("deptno", *params.Deptno)
	}
	if params.Mgr != nil {
		where.Eq("mgr", *params.Mgr)
	}
	if params.ExcludeEmpno != nil {
		where.NotEq("empno", *params.ExcludeEmpno)
	}
	return where
}

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) employee.Repository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return r.GetWhere(ctx, nil)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, empno int) (employee.Employee, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return employee.Employee{}, errors.Wrap(err, "failed to get transaction")
	}
	var m models.Employee
	err = scanEmployee(tx.QueryRow(ctx, employeeFindQuery+" WHERE empno = $1", empno), &m)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}
	if err != nil {
		return employee.Employee{}, wrap(err, "failed to get employee")
	}
	return ToDomainEmployee(&m), nil
}

func (r *EmployeeRepository) GetWhere(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	where := EmployeeWhere(params, repo.Dollar)
	query := repo.Join(employeeFindQuery, where.String(), "ORDER BY empno")

	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	rows, err := tx.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, wrap(err, "failed to execute query")
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var m models.Employee
		if err := scanEmployee(rows, &m); err != nil {
			return nil, wrap(err, "failed to scan employee row")
		}
		employees = append(employees, ToDomainEmployee(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "failed to iterate employee rows")
	}
	return employees, nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, params *employee.FindParams) (bool, error) {
	where := EmployeeWhere(params, repo.Dollar)
	query := repo.Exists(repo.Join("SELECT 1 FROM emp", where.String()))

	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	var exists bool
	if err := tx.QueryRow(ctx, query, where.Args()...).Scan(&exists); err != nil {
		return false, wrap(err, "failed to check employee existence")
	}
	return exists, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return employee.Employee{}, errors.Wrap(err, "failed to get transaction")
	}
	var empno int
	if err := tx.QueryRow(ctx, employeeInsertQuery, employeeArgs(e)...).Scan(&empno); err != nil {
		return employee.Employee{}, wrap(err, "failed to insert employee")
	}
	return e.WithEmpno(empno), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return employee.Employee{}, errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, employeeUpdateQuery, append(employeeArgs(e), e.Empno())...)
	if err != nil {
		return employee.Employee{}, wrap(err, "failed to update employee")
	}
	if tag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrNotFound
	}
	return r.GetByID(ctx, e.Empno())
}

func (r *EmployeeRepository) Delete(ctx context.Context, empno int) (int64, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, employeeClearSelfMgrQuery, empno); err != nil {
		return 0, wrap(err, "failed to clear self reference")
	}
	tag, err := tx.Exec(ctx, employeeDeleteQuery, empno)
	if err != nil {
		return 0, wrap(err, "failed to delete employee")
	}
	return tag.RowsAffected(), nil
}

// employeeArgs binds decimals as text so numeric columns keep their exact value.
func employeeArgs(e employee.Employee) []any {
	var comm *string
	if c := e.Comm(); c != nil {
		s := c.StringFixed(2)
		comm = &s
	}
	return []any{
		e.Ename(),
		e.Job(),
		e.Mgr(),
		e.Hiredate().Time,
		e.Sal().StringFixed(2),
		comm,
		e.Deptno(),
	}
}

func scanEmployee(row pgx.Row, m *models.Employee) error {
	return row.Scan(
		&m.Empno,
		&m.Ename,
		&m.Job,
		&m.Mgr,
		&m.Hiredate,
		&m.Sal,
		&m.Comm,
		&m.Deptno,
	)
}
