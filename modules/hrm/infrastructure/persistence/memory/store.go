// Package memory provides an in-memory store for tests and ephemeral environments.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/repo"
)

var (
	_ department.Repository = (*departmentRepository)(nil)
	_ employee.Repository   = (*employeeRepository)(nil)
	_ repo.Transactor       = (*Store)(nil)
	_ repo.Pinger           = (*Store)(nil)
)

type state struct {
	departments map[int]department.Department
	employees   map[int]employee.Employee
	nextDeptno  int
	nextEmpno   int
}

func (s state) clone() state {
	return state{
		departments: maps.Clone(s.departments),
		employees:   maps.Clone(s.employees),
		nextDeptno:  s.nextDeptno,
		nextEmpno:   s.nextEmpno,
	}
}

// Store keeps departments and employees in maps guarded by a RWMutex.
// Identity values start at 1 and are never reused.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state state
}

func NewStore() *Store {
	return &Store{
		state: state{
			departments: make(map[int]department.Department),
			employees:   make(map[int]employee.Employee),
			nextDeptno:  1,
			nextEmpno:   1,
		},
	}
}

func (s *Store) Departments() department.Repository {
	return &departmentRepository{store: s}
}

func (s *Store) Employees() employee.Repository {
	return &employeeRepository{store: s}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// InTx serializes units of work and restores the previous state when fn fails.
func (s *Store) InTx(ctx context.Context, fn func(context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

type departmentRepository struct {
	store *Store
}

func (r *departmentRepository) GetAll(ctx context.Context) ([]department.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(r.store.state.departments))
	out := make([]department.Department, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.store.state.departments[k])
	}
	return out, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, deptno int) (department.Department, error) {
	if err := ctx.Err(); err != nil {
		return department.Department{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, ok := r.store.state.departments[deptno]
	if !ok {
		return department.Department{}, department.ErrNotFound
	}
	return d, nil
}

func (r *departmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	if err := ctx.Err(); err != nil {
		return department.Department{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := d.WithDeptno(r.store.state.nextDeptno)
	r.store.state.nextDeptno++
	r.store.state.departments[created.Deptno()] = created
	return created, nil
}

func (r *departmentRepository) Update(ctx context.Context, d department.Department) (department.Department, error) {
	if err := ctx.Err(); err != nil {
		return department.Department{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.state.departments[d.Deptno()]; !ok {
		return department.Department{}, department.ErrNotFound
	}
	r.store.state.departments[d.Deptno()] = d
	return d, nil
}

func (r *departmentRepository) Delete(ctx context.Context, deptno int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.state.departments[deptno]; !ok {
		return 0, nil
	}
	delete(r.store.state.departments, deptno)
	return 1, nil
}

type employeeRepository struct {
	store *Store
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return r.GetWhere(ctx, nil)
}

func (r *employeeRepository) GetByID(ctx context.Context, empno int) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.state.employees[empno]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetWhere(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(r.store.state.employees))
	out := make([]employee.Employee, 0, len(keys))
	for _, k := range keys {
		if e := r.store.state.employees[k]; params.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *employeeRepository) Exists(ctx context.Context, params *employee.FindParams) (bool, error) {
	matches, err := r.GetWhere(ctx, params)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := e.WithEmpno(r.store.state.nextEmpno)
	r.store.state.nextEmpno++
	r.store.state.employees[created.Empno()] = created
	return created, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.state.employees[e.Empno()]; !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	r.store.state.employees[e.Empno()] = e
	return e, nil
}

func (r *employeeRepository) Delete(ctx context.Context, empno int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.state.employees[empno]; !ok {
		return 0, nil
	}
	delete(r.store.state.employees, empno)
	return 1, nil
}
