package controllers

import (
	"net/http"

	"github.com/iota-uz/deptemp/pkg/httpapi"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

// NotFound answers every unmatched route.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteError(w, r, serrors.NotFound())
	}
}

// MethodNotAllowed answers a known path requested with an unsupported
// method. Clients see the same 404 as for an unknown route.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteError(w, r, serrors.NotFound())
	}
}
