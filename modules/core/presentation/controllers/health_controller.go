package controllers

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/httpapi"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status string `json:"status"`
}

type HealthController struct {
	app      application.Application
	basePath string
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{
		app:      app,
		basePath: "/health",
	}
}

func (c *HealthController) Key() string {
	return c.basePath
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc(c.basePath, c.Get).Methods(http.MethodGet)
}

// Get pings every registered check in name order and fails on the first error.
func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := c.app.HealthChecks()
	for _, name := range slices.Sorted(maps.Keys(checks)) {
		if err := checks[name].Ping(ctx); err != nil {
			httpapi.WriteError(w, r, serrors.Store("ping "+name, err))
			return
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &HealthResponse{Status: "ok"})
}
