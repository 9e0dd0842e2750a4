package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/presentation/mappers"
	"github.com/iota-uz/deptemp/modules/hrm/services"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/httpapi"
	"github.com/iota-uz/deptemp/pkg/mapping"
)

type EmployeeController struct {
	app             application.Application
	employeeService *services.EmployeeService
	basePath        string
}

func NewEmployeeController(app application.Application) application.Controller {
	return &EmployeeController{
		app:             app,
		employeeService: app.Service(services.EmployeeService{}).(*services.EmployeeService),
		basePath:        "/emp",
	}
}

func (c *EmployeeController) Key() string {
	return c.basePath
}

func (c *EmployeeController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{empno}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{empno}", c.Update).Methods(http.MethodPatch)
	router.HandleFunc("/{empno}", c.Delete).Methods(http.MethodDelete)
}

func (c *EmployeeController) List(w http.ResponseWriter, r *http.Request) {
	entities, err := c.employeeService.GetAll(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if len(entities) == 0 {
		httpapi.WriteNoContent(w)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mapping.MapViewModels(entities, mappers.EmployeeToViewModel))
}

func (c *EmployeeController) Get(w http.ResponseWriter, r *http.Request) {
	empno, err := httpapi.PathID(r, "empno")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.employeeService.GetByID(r.Context(), empno)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.EmployeeToViewModel(entity))
}

func (c *EmployeeController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &employee.CreateDTO{}
	if err := httpapi.DecodeJSON(w, r, dto); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.employeeService.Create(r.Context(), dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.EmployeeToViewModel(entity))
}

func (c *EmployeeController) Update(w http.ResponseWriter, r *http.Request) {
	empno, err := httpapi.PathID(r, "empno")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	dto := &employee.UpdateDTO{}
	if err := httpapi.DecodeJSON(w, r, dto); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	entity, err := c.employeeService.Update(r.Context(), empno, dto)
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.EmployeeToViewModel(entity))
}

func (c *EmployeeController) Delete(w http.ResponseWriter, r *http.Request) {
	empno, err := httpapi.PathID(r, "empno")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := c.employeeService.Delete(r.Context(), empno); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	httpapi.WriteNoContent(w)
}
