package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type greeter struct{ name string }

type stubController struct{ key string }

func (c *stubController) Key() string { return c.key }

func (c *stubController) Register(r *mux.Router) {
	r.HandleFunc(c.key, func(http.ResponseWriter, *http.Request) {})
}

func TestServiceRegistry(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterServices(&greeter{name: "hrm"})

	svc := app.Service(greeter{}).(*greeter)
	require.Equal(t, "hrm", svc.name)

	require.Panics(t, func() { app.Service(stubController{}) })
}

func TestControllersAreOrderedByKey(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterControllers(&stubController{key: "/emp"}, &stubController{key: "/dept"}, &stubController{key: "/"})

	keys := make([]string, 0, 3)
	for _, c := range app.Controllers() {
		keys = append(keys, c.Key())
	}
	require.Equal(t, []string{"/", "/dept", "/emp"}, keys)
}

func TestSeederRunsInOrder(t *testing.T) {
	app := New(&ApplicationOptions{})
	var calls []int
	s := NewSeeder()
	s.Register(
		func(context.Context, Application) error {
			calls = append(calls, 1)
			return nil
		},
		func(context.Context, Application) error {
			calls = append(calls, 2)
			return nil
		},
	)
	require.NoError(t, s.Seed(context.Background(), app))
	require.Equal(t, []int{1, 2}, calls)
}
