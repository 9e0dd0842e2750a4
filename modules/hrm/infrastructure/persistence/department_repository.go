package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/models"
)

const (
	departmentFindQuery   = `SELECT deptno, dname, loc FROM dept`
	departmentInsertQuery = `INSERT INTO dept (dname, loc) VALUES ($1, $2) RETURNING deptno`
	departmentUpdateQuery = `UPDATE dept SET dname = $1, loc = $2 WHERE deptno = $3`
	departmentDeleteQuery = `DELETE FROM dept WHERE deptno = $1`
)

type DepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) department.Repository {
	return &DepartmentRepository{pool: pool}
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]department.Department, error) {
	return r.queryDepartments(ctx, departmentFindQuery+" ORDER BY deptno")
}

func (r *DepartmentRepository) GetByID(ctx context.Context, deptno int) (department.Department, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "failed to get transaction")
	}
	var d models.Department
	err = tx.QueryRow(ctx, departmentFindQuery+" WHERE deptno = $1", deptno).Scan(&d.Deptno, &d.Dname, &d.Loc)
	if errors.Is(err, pgx.ErrNoRows) {
		return department.Department{}, department.ErrNotFound
	}
	if err != nil {
		return department.Department{}, wrap(err, "failed to get department")
	}
	return ToDomainDepartment(&d), nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "failed to get transaction")
	}
	row := ToDBDepartment(d)
	if err := tx.QueryRow(ctx, departmentInsertQuery, row.Dname, row.Loc).Scan(&row.Deptno); err != nil {
		return department.Department{}, wrap(err, "failed to insert department")
	}
	return ToDomainDepartment(row), nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d department.Department) (department.Department, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return department.Department{}, errors.Wrap(err, "failed to get transaction")
	}
	row := ToDBDepartment(d)
	tag, err := tx.Exec(ctx, departmentUpdateQuery, row.Dname, row.Loc, row.Deptno)
	if err != nil {
		return department.Department{}, wrap(err, "failed to update department")
	}
	if tag.RowsAffected() == 0 {
		return department.Department{}, department.ErrNotFound
	}
	return r.GetByID(ctx, row.Deptno)
}

func (r *DepartmentRepository) Delete(ctx context.Context, deptno int) (int64, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	tag, err := tx.Exec(ctx, departmentDeleteQuery, deptno)
	if err != nil {
		return 0, wrap(err, "failed to delete department")
	}
	return tag.RowsAffected(), nil
}

func (r *DepartmentRepository) queryDepartments(ctx context.Context, query string, args ...any) ([]department.Department, error) {
	tx, err := useTx(ctx, r.pool)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(err, "failed to execute query")
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.Deptno, &d.Dname, &d.Loc); err != nil {
			return nil, wrap(err, "failed to scan department row")
		}
		departments = append(departments, ToDomainDepartment(&d))
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "failed to iterate department rows")
	}
	return departments, nil
}
