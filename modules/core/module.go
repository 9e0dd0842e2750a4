package core

import (
	"github.com/iota-uz/deptemp/modules/core/presentation/controllers"
	"github.com/iota-uz/deptemp/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

// Module serves the operational endpoints shared by every deployment.
type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterControllers(
		controllers.NewHealthController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
