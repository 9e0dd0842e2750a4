package employee

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("employee not found")

// FindParams is a conjunction of predicates; nil fields are ignored.
// ExcludeEmpno drops that employee from the match set.
type FindParams struct {
	Deptno       *int
	Mgr          *int
	ExcludeEmpno *int
}

func (p *FindParams) IsEmpty() bool {
	return p == nil || (p.Deptno == nil && p.Mgr == nil && p.ExcludeEmpno == nil)
}

// Matches reports whether e satisfies every set predicate.
func (p *FindParams) Matches(e Employee) bool {
	if p == nil {
		return true
	}
	if p.Deptno != nil && e.Deptno() != *p.Deptno {
		return false
	}
	if p.ExcludeEmpno != nil && e.Empno() == *p.ExcludeEmpno {
		return false
	}
	if p.Mgr != nil {
		mgr := e.Mgr()
		if mgr == nil || *mgr != *p.Mgr {
			return false
		}
	}
	return true
}

type Repository interface {
	GetAll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, empno int) (Employee, error)
	GetWhere(ctx context.Context, params *FindParams) ([]Employee, error)
	Exists(ctx context.Context, params *FindParams) (bool, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, empno int) (int64, error)
}
