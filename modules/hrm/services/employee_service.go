package services

import (
	"context"
	"errors"
	"time"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/eventbus"
	"github.com/iota-uz/deptemp/pkg/repo"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

const employeeEntity = "employee"

type EmployeeService struct {
	repo      employee.Repository
	guard     *IntegrityGuard
	tx        repo.Transactor
	publisher eventbus.EventBus
}

func NewEmployeeService(
	repo employee.Repository,
	guard *IntegrityGuard,
	tx repo.Transactor,
	publisher eventbus.EventBus,
) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		guard:     guard,
		tx:        tx,
		publisher: publisher,
	}
}

// GetAll returns every employee ordered by empno.
func (s *EmployeeService) GetAll(ctx context.Context) ([]employee.Employee, error) {
	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, serrors.Store("select employees", err)
	}
	return entities, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, empno int) (employee.Employee, error) {
	if !storableID(empno) {
		return employee.Employee{}, serrors.NotFound()
	}
	entity, err := s.repo.GetByID(ctx, empno)
	if errors.Is(err, employee.ErrNotFound) {
		return employee.Employee{}, serrors.NotFound()
	}
	if err != nil {
		return employee.Employee{}, serrors.Store("select employee", err)
	}
	return entity, nil
}

func (s *EmployeeService) Create(ctx context.Context, data *employee.CreateDTO) (_ employee.Employee, err error) {
	defer func(started time.Time) { recordMutation(employeeEntity, "create", started, err) }(time.Now())

	if err := data.Validate(); err != nil {
		return employee.Employee{}, err
	}
	entity := data.ToEntity()
	var created employee.Employee
	err = s.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		if err := s.checkReferences(txCtx, entity); err != nil {
			return err
		}
		e, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return serrors.Store("insert employee", err)
		}
		created = e
		return nil
	})
	if err != nil {
		return employee.Employee{}, serrors.From(err)
	}
	s.publisher.Publish(employee.NewCreatedEvent(ctx, *data, created))
	return created, nil
}

// Update replaces every mutable field of an existing employee.
func (s *EmployeeService) Update(ctx context.Context, empno int, data *employee.UpdateDTO) (_ employee.Employee, err error) {
	defer func(started time.Time) { recordMutation(employeeEntity, "update", started, err) }(time.Now())

	if err := data.Validate(); err != nil {
		return employee.Employee{}, err
	}
	entity := data.ToEntity(empno)
	var previous, updated employee.Employee
	err = s.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		if err := s.checkDepartment(txCtx, entity.Deptno()); err != nil {
			return err
		}
		current, err := s.GetByID(txCtx, empno)
		if err != nil {
			return err
		}
		previous = current
		if err := s.checkManager(txCtx, entity.Mgr()); err != nil {
			return err
		}
		e, err := s.repo.Update(txCtx, entity)
		if errors.Is(err, employee.ErrNotFound) {
			return serrors.NotFound()
		}
		if err != nil {
			return serrors.Store("update employee", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return employee.Employee{}, serrors.From(err)
	}
	s.publisher.Publish(employee.NewUpdatedEvent(ctx, *data, previous, updated))
	return updated, nil
}

// Delete removes an employee that no other employee names as manager.
func (s *EmployeeService) Delete(ctx context.Context, empno int) (err error) {
	defer func(started time.Time) { recordMutation(employeeEntity, "delete", started, err) }(time.Now())

	err = s.tx.InTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		exists, err := s.guard.EmployeeExists(txCtx, empno)
		if err != nil {
			return err
		}
		if !exists {
			return serrors.NotFound()
		}
		referenced, err := s.guard.IsReferencedAsManager(txCtx, empno)
		if err != nil {
			return err
		}
		if referenced {
			return serrors.Unprocessablef("empno [%d] can not delete.", empno)
		}
		affected, err := s.repo.Delete(txCtx, empno)
		if err != nil {
			return serrors.Store("delete employee", err)
		}
		if affected == 0 {
			return serrors.NotFound()
		}
		return nil
	})
	if err != nil {
		return serrors.From(err)
	}
	s.publisher.Publish(employee.NewDeletedEvent(ctx, empno))
	return nil
}

func (s *EmployeeService) checkReferences(ctx context.Context, e employee.Employee) error {
	if err := s.checkDepartment(ctx, e.Deptno()); err != nil {
		return err
	}
	return s.checkManager(ctx, e.Mgr())
}

func (s *EmployeeService) checkDepartment(ctx context.Context, deptno int) error {
	exists, err := s.guard.DepartmentExists(ctx, deptno)
	if err != nil {
		return err
	}
	if !exists {
		return serrors.Unprocessablef("deptno [%d] is not exists.", deptno)
	}
	return nil
}

func (s *EmployeeService) checkManager(ctx context.Context, mgr *int) error {
	if mgr == nil {
		return nil
	}
	exists, err := s.guard.EmployeeExists(ctx, *mgr)
	if err != nil {
		return err
	}
	if !exists {
		return serrors.Unprocessablef("mgr(empno) [%d] is not exists.", *mgr)
	}
	return nil
}
