package hrm

import (
	"fmt"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/memory"
	"github.com/iota-uz/deptemp/modules/hrm/infrastructure/persistence/sqlite"
	"github.com/iota-uz/deptemp/modules/hrm/presentation/controllers"
	"github.com/iota-uz/deptemp/modules/hrm/services"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/configuration"
	"github.com/iota-uz/deptemp/pkg/repo"
)

// Store is implemented by every backend the module can run on.
type Store interface {
	repo.Transactor
	repo.Pinger
	Departments() department.Repository
	Employees() employee.Repository
}

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	store, err := NewStore(app)
	if err != nil {
		return err
	}
	guard := services.NewIntegrityGuard(store.Departments(), store.Employees())
	app.RegisterServices(
		services.NewDepartmentService(store.Departments(), guard, store, app.EventPublisher()),
		services.NewEmployeeService(store.Employees(), guard, store, app.EventPublisher()),
	)
	app.RegisterHealthCheck("store", store)
	app.RegisterControllers(
		controllers.NewDepartmentController(app),
		controllers.NewEmployeeController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}

// NewStore picks the backend matching the application's driver.
func NewStore(app application.Application) (Store, error) {
	switch app.Driver() {
	case configuration.DriverMemory:
		return memory.NewStore(), nil
	case configuration.DriverSQLite:
		if app.SQLite() == nil {
			return nil, fmt.Errorf("hrm: driver %q requires an open sqlite database", app.Driver())
		}
		return sqlite.NewStore(app.SQLite()), nil
	case configuration.DriverPostgres, "":
		if app.DB() == nil {
			return nil, fmt.Errorf("hrm: driver %q requires a postgres pool", configuration.DriverPostgres)
		}
		return persistence.NewStore(app.DB()), nil
	default:
		return nil, fmt.Errorf("hrm: unknown store driver %q", app.Driver())
	}
}
