package services

import (
	"context"
	"errors"
	"time"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/pkg/eventbus"
	"github.com/iota-uz/deptemp/pkg/repo"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

const departmentEntity = "department"

type DepartmentService struct {
	repo      department.Repository
	guard     *IntegrityGuard
	tx        repo.Transactor
	publisher eventbus.EventBus
}

func NewDepartmentService(
	repo department.Repository,
	guard *IntegrityGuard,
	tx repo.Transactor,
	publisher eventbus.EventBus,
) *DepartmentService {
	return &DepartmentService{
		repo:      repo,
		guard:     guard,
		tx:        tx,
		publisher: publisher,
	}
}

// GetAll returns every department ordered by deptno.
func (s *DepartmentService) GetAll(ctx context.Context) ([]department.Department, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, serrors.Store("select departments", err)
	}
	return entities, nil
}

func (s *DepartmentService) GetByID(ctx context.Context, deptno int) (department.Department, error) {
	if !storableID(deptno) {
		return department.Department{}, serrors.NotFound()
	}
	entity, err := s.repo.GetByID(ctx, deptno)
	if errors.Is(err, department.ErrNotFound) {
		return department.Department{}, serrors.NotFound()
	}
	if err != nil {
		return department.Department{}, serrors.Store("select department", err)
	}
	return entity, nil
}

func (s *DepartmentService) Create(ctx context.Context, data *department.CreateDTO) (_ department.Department, err error) {
	defer func(started time.Time) { recordMutation(departmentEntity, "create", started, err) }(time.Now())

	if err := data.Validate(); err != nil {
		return department.Department{}, err
	}
	var created department.Department
	err = s.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		entity, err := s.repo.Create(txCtx, data.ToEntity())
		if err != nil {
			return serrors.Store("insert department", err)
		}
		created = entity
		return nil
	})
	if err != nil {
		return department.Department{}, serrors.From(err)
	}
	s.publisher.Publish(department.NewCreatedEvent(ctx, *data, created))
	return created, nil
}

// Update replaces dname and loc of an existing department.
func (s *DepartmentService) Update(ctx context.Context, deptno int, data *department.UpdateDTO) (_ department.Department, err error) {
	defer func(started time.Time) { recordMutation(departmentEntity, "update", started, err) }(time.Now())

	if err := data.Validate(); err != nil {
		return department.Department{}, err
	}
	var previous, updated department.Department
	err = s.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		current, err := s.GetByID(txCtx, deptno)
		if err != nil {
			return err
		}
		previous = current
		entity, err := s.repo.Update(txCtx, data.ToEntity(deptno))
		if errors.Is(err, department.ErrNotFound) {
			return serrors.NotFound()
		}
		if err != nil {
			return serrors.Store("update department", err)
		}
		updated = entity
		return nil
	})
	if err != nil {
		return department.Department{}, serrors.From(err)
	}
	s.publisher.Publish(department.NewUpdatedEvent(ctx, *data, previous, updated))
	return updated, nil
}

// Delete removes a department that no employee references.
func (s *DepartmentService) Delete(ctx context.Context, deptno int) (err error) {
	defer func(started time.Time) { recordMutation(departmentEntity, "delete", started, err) }(time.Now())

	err = s.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		exists, err := s.guard.DepartmentExists(txCtx, deptno)
		if err != nil {
			return err
		}
		if !exists {
			return serrors.NotFound()
		}
		referenced, err := s.guard.HasDependentEmployees(txCtx, deptno)
		if err != nil {
			return err
		}
		if referenced {
			return serrors.Unprocessablef("deptno [%d] can not delete.", deptno)
		}
		affected, err := s.repo.Delete(txCtx, deptno)
		if err != nil {
			return serrors.Store("delete department", err)
		}
		if affected == 0 {
			return serrors.NotFound()
		}
		return nil
	})
	if err != nil {
		return serrors.From(err)
	}
	s.publisher.Publish(department.NewDeletedEvent(ctx, deptno))
	return nil
}
