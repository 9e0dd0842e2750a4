package viewmodels

type Department struct {
	Deptno int    `json:"deptno"`
	Dname  string `json:"dname"`
	Loc    string `json:"loc"`
}

// Employee renders amounts as fixed two-decimal strings and omits absent
// manager and commission.
type Employee struct {
	Empno    int     `json:"empno"`
	Ename    string  `json:"ename"`
	Job      string  `json:"job"`
	Mgr      *int    `json:"mgr,omitempty"`
	Hiredate string  `json:"hiredate"`
	Sal      string  `json:"sal"`
	Comm     *string `json:"comm,omitempty"`
	Deptno   int     `json:"deptno"`
}
