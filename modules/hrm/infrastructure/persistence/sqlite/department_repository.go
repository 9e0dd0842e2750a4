package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/models"
)

const (
	departmentFindQuery   = `SELECT deptno, dname, loc FROM dept`
	departmentInsertQuery = `INSERT INTO dept (dname, loc) VALUES (?, ?)`
	departmentUpdateQuery = `UPDATE dept SET dname = ?, loc = ? WHERE deptno = ?`
	departmentDeleteQuery = `DELETE FROM dept WHERE deptno = ?`
)

type DepartmentRepository struct {
	db *sqlx.DB
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]department.Department, error) {
	var rows []models.Department
	if err := sqlx.SelectContext(ctx, useTx(ctx, r.db), &rows, departmentFindQuery+" ORDER BY deptno"); err != nil {
		return nil, wrap(err, "failed to select departments")
	}
	out := make([]department.Department, 0, len(rows))
	for i := range rows {
		out = append(out, persistence.ToDomainDepartment(&rows[i]))
	}
	return out, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, deptno int) (department.Department, error) {
	var row models.Department
	err := sqlx.GetContext(ctx, useTx(ctx, r.db), &row, departmentFindQuery+" WHERE deptno = ?", deptno)
	if errors.Is(err, sql.ErrNoRows) {
		return department.Department{}, department.ErrNotFound
	}
	if err != nil {
		return department.Department{}, wrap(err, "failed to get department")
	}
	return persistence.ToDomainDepartment(&row), nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	row := persistence.ToDBDepartment(d)
	res, err := useTx(ctx, r.db).ExecContext(ctx, departmentInsertQuery, row.Dname, row.Loc)
	if err != nil {
		return department.Department{}, wrap(err, "failed to insert department")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return department.Department{}, wrap(err, "failed to read department id")
	}
	return d.WithDeptno(int(id)), nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d department.Department) (department.Department, error) {
	row := persistence.ToDBDepartment(d)
	res, err := useTx(ctx, r.db).ExecContext(ctx, departmentUpdateQuery, row.Dname, row.Loc, row.Deptno)
	if err != nil {
		return department.Department{}, wrap(err, "failed to update department")
	}
	if n, err := res.RowsAffected(); err != nil {
		return department.Department{}, wrap(err, "failed to read affected rows")
	} else if n == 0 {
		return department.Department{}, department.ErrNotFound
	}
	return d, nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, deptno int) (int64, error) {
	res, err := useTx(ctx, r.db).ExecContext(ctx, departmentDeleteQuery, deptno)
	if err != nil {
		return 0, wrap(err, "failed to delete department")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(err, "failed to read affected rows")
	}
	return n, nil
}
