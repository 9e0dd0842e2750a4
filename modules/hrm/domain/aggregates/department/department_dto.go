package department

import (
	"github.com/iota-uz/deptemp/pkg/validation"
)

type CreateDTO struct {
	Dname string `json:"dname"`
	Loc   string `json:"loc"`
}

// UpdateDTO replaces every mutable field of a department.
type UpdateDTO CreateDTO

var schema = validation.NewSchema(
	validation.Of("dname", func(d CreateDTO) any { return d.Dname },
		validation.Length(1, 14, "must be between 1 and 14 characters")),
	validation.Of("loc", func(d CreateDTO) any { return d.Loc },
		validation.Length(1, 13, "must be between 1 and 13 characters")),
)

// Validate checks the fields as received; surrounding whitespace counts
// toward the length limits and is stored verbatim.
func (d *CreateDTO) Validate() error {
	return schema.Validate(*d)
}

func (d *CreateDTO) ToEntity() Department {
	return New(d.Dname, d.Loc)
}

func (d *UpdateDTO) Validate() error {
	return (*CreateDTO)(d).Validate()
}

func (d *UpdateDTO) ToEntity(deptno int) Department {
	return New(d.Dname, d.Loc).WithDeptno(deptno)
}
