package employee

import (
	"github.com/shopspring/decimal"

	"github.com/iota-uz/deptemp/pkg/types"
)

type Employee struct {
	empno    int
	ename    string
	job      string
	mgr      *int
	hiredate types.Date
	sal      decimal.Decimal
	comm     *decimal.Decimal
	deptno   int
}

func New(
	ename string,
	job string,
	mgr *int,
	hiredate types.Date,
	sal decimal.Decimal,
	comm *decimal.Decimal,
	deptno int,
) Employee {
	return Employee{
		ename:    ename,
		job:      job,
		mgr:      copyInt(mgr),
		hiredate: hiredate,
		sal:      sal,
		comm:     copyDecimal(comm),
		deptno:   deptno,
	}
}

func Hydrate(
	empno int,
	ename string,
	job string,
	mgr *int,
	hiredate types.Date,
	sal decimal.Decimal,
	comm *decimal.Decimal,
	deptno int,
) Employee {
	e := New(ename, job, mgr, hiredate, sal, comm, deptno)
	e.empno = empno
	return e
}

func (e Employee) Empno() int             { return e.empno }
func (e Employee) Ename() string          { return e.ename }
func (e Employee) Job() string            { return e.job }
func (e Employee) Mgr() *int              { return copyInt(e.mgr) }
func (e Employee) Hiredate() types.Date   { return e.hiredate }
func (e Employee) Sal() decimal.Decimal   { return e.sal }
func (e Employee) Comm() *decimal.Decimal { return copyDecimal(e.comm) }
func (e Employee) Deptno() int            { return e.deptno }
func (e Employee) HasManager() bool       { return e.mgr != nil }

// WithEmpno returns a copy carrying the identity assigned by the store.
func (e Employee) WithEmpno(empno int) Employee {
	e.empno = empno
	return e
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyDecimal(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
