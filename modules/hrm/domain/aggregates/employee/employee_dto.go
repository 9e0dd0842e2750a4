package employee

import (
	"github.com/shopspring/decimal"

	"github.com/iota-uz/deptemp/pkg/types"
	"github.com/iota-uz/deptemp/pkg/validation"
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.RequireFromString("99999.99")
)

const (
	amountRangeMessage = "must be between 0.01 and 99999.99"
	amountScaleMessage = "must have at most 2 decimal places"
	requiredMessage    = "is required"
)

type CreateDTO struct {
	Ename    string           `json:"ename"`
	Job      string           `json:"job"`
	Mgr      *int             `json:"mgr"`
	Hiredate *types.Date      `json:"hiredate"`
	Sal      *decimal.Decimal `json:"sal"`
	Comm     *decimal.Decimal `json:"comm"`
	Deptno   *int             `json:"deptno"`
}

// UpdateDTO replaces every mutable field of an employee.
type UpdateDTO CreateDTO

var schema = validation.NewSchema(
	validation.Of("ename", func(d CreateDTO) any { return d.Ename },
		validation.Length(1, 10, "must be between 1 and 10 characters")),
	validation.Of("job", func(d CreateDTO) any { return d.Job },
		validation.Length(1, 9, "must be between 1 and 9 characters")),
	validation.Of("hiredate", func(d CreateDTO) any { return d.Hiredate },
		validation.Required(requiredMessage)),
	validation.Of("sal", func(d CreateDTO) any { return d.Sal },
		validation.Required(requiredMessage),
		validation.DecimalRange(minAmount, maxAmount, amountRangeMessage),
		validation.Scale(2, amountScaleMessage)),
	validation.Of("comm", func(d CreateDTO) any { return d.Comm },
		validation.DecimalRange(minAmount, maxAmount, amountRangeMessage),
		validation.Scale(2, amountScaleMessage)),
	validation.Of("deptno", func(d CreateDTO) any { return d.Deptno },
		validation.Required(requiredMessage)),
)

func (d *CreateDTO) Validate() error {
	return schema.Validate(*d)
}

// ToEntity must only be called after Validate succeeded.
func (d *CreateDTO) ToEntity() Employee {
	return New(d.Ename, d.Job, d.Mgr, *d.Hiredate, *d.Sal, d.Comm, *d.Deptno)
}

func (d *UpdateDTO) Validate() error {
	return (*CreateDTO)(d).Validate()
}

func (d *UpdateDTO) ToEntity(empno int) Employee {
	return (*CreateDTO)(d).ToEntity().WithEmpno(empno)
}
