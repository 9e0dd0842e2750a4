package modules

import (
	"github.com/iota-uz/deptemp/modules/core"
	"github.com/iota-uz/deptemp/modules/hrm"
	"github.com/iota-uz/deptemp/modules/logging"
	"github.com/iota-uz/deptemp/modules/sandbox"
	"github.com/iota-uz/deptemp/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		core.NewModule(),
		hrm.NewModule(),
		logging.NewModule(),
		sandbox.NewModule(),
	}
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
