package department

type Department struct {
	deptno int
	dname  string
	loc    string
}

func New(dname, loc string) Department {
	return Department{
		dname: dname,
		loc:   loc,
	}
}

func Hydrate(deptno int, dname, loc string) Department {
	return Department{
		deptno: deptno,
		dname:  dname,
		loc:    loc,
	}
}

func (d Department) Deptno() int   { return d.deptno }
func (d Department) Dname() string { return d.dname }
func (d Department) Loc() string   { return d.loc }
func (d Department) IsZero() bool  { return d.deptno == 0 && d.dname == "" && d.loc == "" }

// WithDeptno returns a copy carrying the identity assigned by the store.
func (d Department) WithDeptno(deptno int) Department {
	d.deptno = deptno
	return d
}
