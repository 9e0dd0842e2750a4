package persistence

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/models"
)

func ToDomainDepartment(m *models.Department) department.Department {
	return department.Hydrate(m.Deptno, m.Dname, m.Loc)
}

func ToDBDepartment(d department.Department) *models.Department {
	return &models.Department{
		Deptno: d.Deptno(),
		Dname:  d.Dname(),
		Loc:    d.Loc(),
	}
}

func ToDomainEmployee(m *models.Employee) employee.Employee {
	var mgr *int
	if m.Mgr.Valid {
		v := int(m.Mgr.Int64)
		mgr = &v
	}
	var comm *decimal.Decimal
	if m.Comm.Valid {
		comm = &m.Comm.Decimal
	}
	return employee.Hydrate(m.Empno, m.Ename, m.Job, mgr, m.Hiredate, m.Sal, comm, m.Deptno)
}

func ToDBEmployee(e employee.Employee) *models.Employee {
	m := &models.Employee{
		Empno:    e.Empno(),
		Ename:    e.Ename(),
		Job:      e.Job(),
		Hiredate: e.Hiredate(),
		Sal:      e.Sal(),
		Deptno:   e.Deptno(),
	}
	if mgr := e.Mgr(); mgr != nil {
		m.Mgr = sql.NullInt64{Int64: int64(*mgr), Valid: true}
	}
	if comm := e.Comm(); comm != nil {
		m.Comm = decimal.NullDecimal{Decimal: *comm, Valid: true}
	}
	return m
}
