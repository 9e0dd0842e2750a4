package logging

import (
	"github.com/iota-uz/deptemp/modules/logging/handlers"
	"github.com/iota-uz/deptemp/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

// Module writes an audit log entry for every committed department or
// employee mutation.
type Module struct {
}

func (m *Module) Register(app application.Application) error {
	handlers.RegisterMutationEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
