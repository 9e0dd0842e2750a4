package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/iota-uz/deptemp/pkg/composables"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps err onto the taxonomy and writes its status and message.
// Server-side failures are logged with the full cause.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e := serrors.From(err)
	if e == nil {
		e = serrors.Internal(nil)
	}
	if r != nil {
		logger := composables.UseLogger(r.Context()).WithField("error-kind", e.Kind().String())
		if e.Status() >= http.StatusInternalServerError {
			logger.WithError(err).Error("request failed")
		} else {
			logger.WithError(err).Debug("request rejected")
		}
	}
	_ = WriteJSON(w, e.Status(), &ErrorEnvelope{Message: e.Message()})
}
