package models

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/iota-uz/deptemp/pkg/types"
)

type Department struct {
	Deptno int    `db:"deptno"`
	Dname  string `db:"dname"`
	Loc    string `db:"loc"`
}

type Employee struct {
	Empno    int                 `db:"empno"`
	Ename    string              `db:"ename"`
	Job      string              `db:"job"`
	Mgr      sql.NullInt64       `db:"mgr"`
	Hiredate types.Date          `db:"hiredate"`
	Sal      decimal.Decimal     `db:"sal"`
	Comm     decimal.NullDecimal `db:"comm"`
	Deptno   int                 `db:"deptno"`
}
