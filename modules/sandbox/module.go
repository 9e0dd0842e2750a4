package sandbox

import (
	"github.com/iota-uz/deptemp/modules/sandbox/presentation/controllers"
	"github.com/iota-uz/deptemp/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterControllers(
		controllers.NewSandboxController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "sandbox"
}
