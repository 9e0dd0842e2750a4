package serrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type publicErr struct{}

func (publicErr) Error() string {
	return `insert or update on table "emp" violates foreign key constraint`
}

func (publicErr) PublicCause() string { return "SQLSTATE 23503" }

func TestKindStatusMapping(t *testing.T) {
	cases := []struct {
		err     *Error
		status  int
		message string
	}{
		{NotFound(), http.StatusNotFound, "Not Found."},
		{Unprocessable("deptno [1] can not delete."), http.StatusUnprocessableEntity, "deptno [1] can not delete."},
		{Malformed(errors.New("invalid json")), http.StatusBadRequest, "Bad Request. [invalid json]"},
		{
			Validation(Violations{{Field: "dname", Rule: "length", Message: "must be 1-14 characters"}}),
			http.StatusBadRequest,
			"Bad Request. [dname: must be 1-14 characters]",
		},
		{Store("insert department", errors.New("conn refused")), http.StatusInternalServerError, "Internal Server Error. [insert department: conn refused]"},
		{Internal(errors.New("boom")), http.StatusInternalServerError, "Internal Server Error. [boom]"},
	}
	for _, tc := range cases {
		t.Run(tc.err.Kind().String(), func(t *testing.T) {
			require.Equal(t, tc.status, tc.err.Status())
			require.Equal(t, tc.message, tc.err.Message())
		})
	}
}

func TestFrom_ClassifiesWrappedAndForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Unprocessable("nope"))
	require.Equal(t, KindUnprocessableEntity, From(wrapped).Kind())
	require.ErrorIs(t, wrapped, ErrUnprocessableEntity)
	require.NotErrorIs(t, wrapped, ErrNotFound)

	require.Equal(t, KindInternalFailure, From(errors.New("plain")).Kind())
	require.Equal(t, KindStoreFailure, From(context.DeadlineExceeded).Kind())
	require.Nil(t, From(nil))
	require.Equal(t, Kind(0), KindOf(nil))
}

func TestStore_SanitizesPublicCause(t *testing.T) {
	err := Store("insert employee", fmt.Errorf("exec: %w", publicErr{}))
	require.Equal(t, "Internal Server Error. [insert employee: SQLSTATE 23503]", err.Message())
	require.NotContains(t, err.Message(), "foreign key")
	require.Contains(t, err.Error(), "foreign key", "full cause stays available for logs")
}

func TestStore_KeepsExistingKind(t *testing.T) {
	err := Store("select department", NotFound())
	require.Equal(t, KindNotFound, err.Kind())
}

func TestViolations_Err(t *testing.T) {
	require.NoError(t, Violations(nil).Err())

	err := Violations{{Field: "loc", Rule: "length", Message: "too long"}}.Err()
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Equal(t, "Bad Request. [loc: too long]", From(err).Message())
}
