package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/presentation/mappers"
	"github.com/iota-uz/deptemp/modules/hrm/services"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/httpapi"
	"github.com/iota-uz/deptemp/pkg/mapping"
)

type DepartmentController struct {
	app               application.Application
	departmentService *services.DepartmentService
	basePath          string
}

func NewDepartmentController(app application.Application) application.Controller {
	return &DepartmentController{
		app:               app,
		departmentService: app.Service(services.DepartmentService{}).(*services.DepartmentService),
		basePath:          "/dept",
	}
}

func (c *DepartmentController) Key() string {
	return c.basePath
}

func (c *DepartmentController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{deptno}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{deptno}", c.Update).Methods(http.MethodPatch)
	router.HandleFunc("/{deptno}", c.Delete).Methods(http.MethodDelete)
}

func (c *DepartmentController) List(w http.ResponseWriter, r *http.Request) {
	entities, err := c.departmentService.GetAll(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if len(entities) == 0 {
		httpapi.WriteNoContent(w)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mapping.MapViewModels(entities, mappers.DepartmentToViewModel))
}

func (c *DepartmentController) Get(w http.ResponseWriter, r *http.Request) {
	deptno, err := httpapi.PathID(r, "deptno")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.departmentService.GetByID(r.Context(), deptno)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.DepartmentToViewModel(entity))
}

func (c *DepartmentController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &department.CreateDTO{}
	if err := httpapi.DecodeJSON(w, r, dto); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.departmentService.Create(r.Context(), dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.DepartmentToViewModel(entity))
}

func (c *DepartmentController) Update(w http.ResponseWriter, r *http.Request) {
	deptno, err := httpapi.PathID(r, "deptno")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	dto := &department.UpdateDTO{}
	if err := httpapi.DecodeJSON(w, r, dto); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.departmentService.Update(r.Context(), deptno, dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.DepartmentToViewModel(entity))
}

func (c *DepartmentController) Delete(w http.ResponseWriter, r *http.Request) {
	deptno, err := httpapi.PathID(r, "deptno")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := c.departmentService.Delete(r.Context(), deptno); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteNoContent(w)
}
