package services

import (
	"context"
	"errors"
	"math"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

// IntegrityGuard answers the read-only reference questions asked before a
// mutation is persisted. Store errors come back as StoreFailure.
type IntegrityGuard struct {
	departments department.Repository
	employees   employee.Repository
}

func NewIntegrityGuard(departments department.Repository, employees employee.Repository) *IntegrityGuard {
	return &IntegrityGuard{
		departments: departments,
		employees:   employees,
	}
}

// storableID reports whether id fits the identity columns (INTEGER). Larger
// ids cannot name a stored row and are answered without a store call.
func storableID(id int) bool {
	return id > 0 && id <= math.MaxInt32
}

func (g *IntegrityGuard) DepartmentExists(ctx context.Context, deptno int) (bool, error) {
	if !storableID(deptno) {
		return false, nil
	}
	_, err := g.departments.GetByID(ctx, deptno)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, department.ErrNotFound):
		return false, nil
	default:
		return false, serrors.Store("select department", err)
	}
}

func (g *IntegrityGuard) EmployeeExists(ctx context.Context, empno int) (bool, error) {
	if !storableID(empno) {
		return false, nil
	}
	_, err := g.employees.GetByID(ctx, empno)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, employee.ErrNotFound):
		return false, nil
	default:
		return false, serrors.Store("select employee", err)
	}
}

// HasDependentEmployees reports whether any employee belongs to deptno.
func (g *IntegrityGuard) HasDependentEmployees(ctx context.Context, deptno int) (bool, error) {
	ok, err := g.employees.Exists(ctx, &employee.FindParams{Deptno: &deptno})
	if err != nil {
		return false, serrors.Store("select employees by deptno", err)
	}
	return ok, nil
}

// IsReferencedAsManager reports whether another employee names empno as its
// manager. A self reference does not block deletion.
func (g *IntegrityGuard) IsReferencedAsManager(ctx context.Context, empno int) (bool, error) {
	ok, err := g.employees.Exists(ctx, &employee.FindParams{Mgr: &empno, ExcludeEmpno: &empno})
	if err != nil {
		return false, serrors.Store("select employees by mgr", err)
	}
	return ok, nil
}
