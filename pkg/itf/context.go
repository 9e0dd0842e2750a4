// Package itf builds fully wired applications for integration tests.
package itf

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"

	corecontrollers "github.com/iota-uz/deptemp/modules/core/presentation/controllers"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/commands/common"
	"github.com/iota-uz/deptemp/pkg/configuration"
	"github.com/iota-uz/deptemp/pkg/middleware"
	"github.com/iota-uz/deptemp/pkg/server"
)

// TestContext provides a fluent API for building test environments
type TestContext struct {
	ctx     context.Context
	driver  string
	logger  *logrus.Logger
	modules []application.Module
}

func NewTestContext() *TestContext {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &TestContext{
		ctx:    context.Background(),
		driver: configuration.DriverMemory,
		logger: logger,
	}
}

func (tc *TestContext) WithModules(modules ...application.Module) *TestContext {
	tc.modules = append(tc.modules, modules...)
	return tc
}

// WithDriver selects the store backend. Postgres environments are skipped
// unless ITF_DATABASE_URL is set.
func (tc *TestContext) WithDriver(driver string) *TestContext {
	tc.driver = driver
	return tc
}

func (tc *TestContext) WithLogger(logger *logrus.Logger) *TestContext {
	tc.logger = logger
	return tc
}

// Build opens a fresh store, registers the modules and assembles the HTTP
// handler with the request logger and the JSON not-found handlers.
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	conf := tc.configuration(tb)
	handles, err := common.OpenHandles(tc.ctx, conf)
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(handles.Close)

	prepareSchema(tc.ctx, tb, conf, handles)

	app := application.New(&application.ApplicationOptions{
		Pool:   handles.Pool,
		SQLite: handles.SQLite,
		Driver: handles.Driver,
		Logger: tc.logger,
	})
	for _, module := range tc.modules {
		if err := module.Register(app); err != nil {
			tb.Fatalf("register module %s: %v", module.Name(), err)
		}
	}
	app.RegisterMiddleware(middleware.WithLogger(tc.logger, middleware.DefaultLoggerOptions()))

	srv := server.NewHTTPServer(app, corecontrollers.NotFound(), corecontrollers.MethodNotAllowed())
	srv.Gzip = false

	return &TestEnvironment{
		Ctx:     tc.ctx,
		App:     app,
		Handles: handles,
		Handler: srv.Handler(),
	}
}

type TestEnvironment struct {
	Ctx     context.Context
	App     application.Application
	Handles *common.Handles
	Handler http.Handler
}

// Service fetches a registered service, e.g. env.Service(services.DepartmentService{}).
func (te *TestEnvironment) Service(service interface{}) interface{} {
	return te.App.Service(service)
}
