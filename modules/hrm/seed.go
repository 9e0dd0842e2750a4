package hrm

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/services"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/types"
)

type seedEmployee struct {
	ename    string
	job      string
	mgr      string
	hiredate types.Date
	sal      string
	comm     string
	dname    string
}

var (
	seedDepartments = []department.CreateDTO{
		{Dname: "ACCOUNTING", Loc: "NEW YORK"},
		{Dname: "RESEARCH", Loc: "DALLAS"},
		{Dname: "SALES", Loc: "CHICAGO"},
		{Dname: "OPERATIONS", Loc: "BOSTON"},
	}
	// Managers come before their reports.
	seedEmployees = []seedEmployee{
		{ename: "KING", job: "PRESIDENT", hiredate: types.NewDate(1981, 11, 17), sal: "5000", dname: "ACCOUNTING"},
		{ename: "JONES", job: "MANAGER", mgr: "KING", hiredate: types.NewDate(1981, 4, 2), sal: "2975", dname: "RESEARCH"},
		{ename: "BLAKE", job: "MANAGER", mgr: "KING", hiredate: types.NewDate(1981, 5, 1), sal: "2850", dname: "SALES"},
		{ename: "CLARK", job: "MANAGER", mgr: "KING", hiredate: types.NewDate(1981, 6, 9), sal: "2450", dname: "ACCOUNTING"},
		{ename: "SMITH", job: "CLERK", mgr: "JONES", hiredate: types.NewDate(1980, 12, 17), sal: "800", dname: "RESEARCH"},
		{ename: "ALLEN", job: "SALESMAN", mgr: "BLAKE", hiredate: types.NewDate(1981, 2, 20), sal: "1600", comm: "300", dname: "SALES"},
		{ename: "WARD", job: "SALESMAN", mgr: "BLAKE", hiredate: types.NewDate(1981, 2, 22), sal: "1250", comm: "500", dname: "SALES"},
	}
)

// SeedDemoData creates the demo departments and employees through the
// services, so seeding obeys the same integrity rules as the API. It does
// nothing when departments already exist.
func SeedDemoData(ctx context.Context, app application.Application) error {
	departmentService := app.Service(services.DepartmentService{}).(*services.DepartmentService)
	employeeService := app.Service(services.EmployeeService{}).(*services.EmployeeService)
	logger := app.Logger()

	existing, err := departmentService.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Infof("hrm: %d departments present, skipping seed", len(existing))
		return nil
	}

	deptnos := make(map[string]int, len(seedDepartments))
	for _, d := range seedDepartments {
		dto := d
		created, err := departmentService.Create(ctx, &dto)
		if err != nil {
			return err
		}
		deptnos[created.Dname()] = created.Deptno()
	}

	empnos := make(map[string]int, len(seedEmployees))
	for _, e := range seedEmployees {
		dto := &employee.CreateDTO{
			Ename:    e.ename,
			Job:      e.job,
			Hiredate: &e.hiredate,
			Sal:      decimalPtr(e.sal),
			Comm:     decimalPtr(e.comm),
			Deptno:   intPtr(deptnos[e.dname]),
		}
		if e.mgr != "" {
			dto.Mgr = intPtr(empnos[e.mgr])
		}
		created, err := employeeService.Create(ctx, dto)
		if err != nil {
			return err
		}
		empnos[created.Ename()] = created.Empno()
	}
	logger.Infof("hrm: seeded %d departments and %d employees", len(deptnos), len(empnos))
	return nil
}

func decimalPtr(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}
