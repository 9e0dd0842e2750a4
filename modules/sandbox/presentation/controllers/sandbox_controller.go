package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/deptemp/modules/sandbox/domain/schemas"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/composables"
	"github.com/iota-uz/deptemp/pkg/httpapi"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

// SandboxController serves small demonstration endpoints that exercise path,
// query and body decoding plus validation.
type SandboxController struct {
	app application.Application
}

func NewSandboxController(app application.Application) application.Controller {
	return &SandboxController{app: app}
}

func (c *SandboxController) Key() string {
	return "/"
}

func (c *SandboxController) Register(r *mux.Router) {
	r.HandleFunc("/", c.Hello).Methods(http.MethodGet)
	r.HandleFunc("/hey", c.Hey).Methods(http.MethodGet)
	r.HandleFunc("/echo", c.Echo).Methods(http.MethodPost)
	r.HandleFunc("/path1/{param1}", c.Path1).Methods(http.MethodGet)
	r.HandleFunc("/path2/{param1}/{param2}", c.Path2).Methods(http.MethodGet)
	r.HandleFunc("/path3/{param:.*}", c.Path3).Methods(http.MethodGet)
	r.HandleFunc("/json", c.JSON).Methods(http.MethodPost)
	r.HandleFunc("/validate", c.GetValidate).Methods(http.MethodGet)
	r.HandleFunc("/validate", c.PostValidate).Methods(http.MethodPost)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (c *SandboxController) Hello(w http.ResponseWriter, r *http.Request) {
	composables.UseLogger(r.Context()).Info("Hello World!")
	writeText(w, http.StatusOK, "Hello World!")
}

func (c *SandboxController) Hey(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Hello there!")
}

func (c *SandboxController) Echo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, httpapi.MaxBodyBytes))
	if err != nil {
		httpapi.WriteError(w, r, serrors.Malformed(err))
		return
	}
	writeText(w, http.StatusOK, string(body))
}

func (c *SandboxController) Path1(w http.ResponseWriter, r *http.Request) {
	v, err := httpapi.PathUint32(r, "param1")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &schemas.Path1Response{Value: v})
}

func (c *SandboxController) Path2(w http.ResponseWriter, r *http.Request) {
	a, err := httpapi.PathUint32(r, "param1")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	b, err := httpapi.PathUint32(r, "param2")
	if err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, fmt.Sprintf("param1: %d, param2: %d", a, b))
}

func (c *SandboxController) Path3(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "param: "+mux.Vars(r)["param"])
}

func (c *SandboxController) JSON(w http.ResponseWriter, r *http.Request) {
	req := &schemas.JSONRequest{}
	if err := httpapi.DecodeJSON(w, r, req); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	switch {
	case req.Val1 == nil:
		httpapi.WriteError(w, r, serrors.Malformed(errors.New("missing field val1")))
		return
	case req.Val2 == nil:
		httpapi.WriteError(w, r, serrors.Malformed(errors.New("missing field val2")))
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &schemas.JSONResponse{ResVal1: *req.Val1, ResVal2: *req.Val2})
}

func (c *SandboxController) GetValidate(w http.ResponseWriter, r *http.Request) {
	query := schemas.ValidateQuery{}
	if err := httpapi.DecodeQuery(r, &query); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := query.Validate(); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &query)
}

func (c *SandboxController) PostValidate(w http.ResponseWriter, r *http.Request) {
	form := schemas.ValidateForm{}
	if err := httpapi.DecodeJSON(w, r, &form); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	if err := form.Validate(); err != nil {
		httpapi.WriteError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &form)
}
