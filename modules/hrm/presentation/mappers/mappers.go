package mappers

import (
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/deptemp/pkg/mapping"
)

func DepartmentToViewModel(entity department.Department) *viewmodels.Department {
	return &viewmodels.Department{
		Deptno: entity.Deptno(),
		Dname:  entity.Dname(),
		Loc:    entity.Loc(),
	}
}

func EmployeeToViewModel(entity employee.Employee) *viewmodels.Employee {
	vm := &viewmodels.Employee{
		Empno:    entity.Empno(),
		Ename:    entity.Ename(),
		Job:      entity.Job(),
		Mgr:      entity.Mgr(),
		Hiredate: entity.Hiredate().String(),
		Sal:      entity.Sal().StringFixed(2),
		Deptno:   entity.Deptno(),
	}
	if comm := entity.Comm(); comm != nil {
		vm.Comm = mapping.Pointer(comm.StringFixed(2))
	}
	return vm
}
