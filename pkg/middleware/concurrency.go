package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/semaphore"

	"github.com/iota-uz/deptemp/pkg/composables"
	"github.com/iota-uz/deptemp/pkg/httpapi"
	"github.com/iota-uz/deptemp/pkg/serrors"
)

// LimitConcurrency lets at most workers handlers run at once. Waiting requests
// give up when their context ends.
func LimitConcurrency(workers int) mux.MiddlewareFunc {
	sem := semaphore.NewWeighted(int64(workers))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				composables.UseLogger(r.Context()).WithError(err).Warn("request abandoned while waiting for a worker")
				httpapi.WriteError(w, r, serrors.Internal(err))
				return
			}
			defer sem.Release(1)
			next.ServeHTTP(w, r)
		})
	}
}
