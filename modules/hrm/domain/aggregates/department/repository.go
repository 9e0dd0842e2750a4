package department

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("department not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Department, error)
	GetByID(ctx context.Context, deptno int) (Department, error)
	Create(ctx context.Context, d Department) (Department, error)
	Update(ctx context.Context, d Department) (Department, error)
	Delete(ctx context.Context, deptno int) (int64, error)
}
