package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/deptemp/pkg/serrors"
)

func TestPathUint32(t *testing.T) {
	cases := []struct {
		raw     string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tc.raw})
			got, err := PathUint32(r, "id")
			if tc.wantErr {
				require.ErrorIs(t, err, serrors.ErrMalformedRequest)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPathUint32_MissingVar(t *testing.T) {
	_, err := PathUint32(httptest.NewRequest(http.MethodGet, "/", nil), "id")
	require.Equal(t, "Bad Request. [missing path parameter id]", serrors.From(err).Message())
}

func TestDecodeJSON_Messages(t *testing.T) {
	type payload struct {
		N int `json:"n"`
	}
	cases := []struct {
		body    string
		message string
	}{
		{"", "Bad Request. [request body is empty]"},
		{`{"n":`, "Bad Request. [request body is truncated]"},
		{`{"n" 1}`, "Bad Request. [invalid JSON at offset "},
		{`{"n":"x"}`, "Bad Request. [n: invalid type string, expected int]"},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			err := DecodeJSON(httptest.NewRecorder(), req, &payload{})
			require.True(t, strings.HasPrefix(serrors.From(err).Message(), tc.message), serrors.From(err).Message())
		})
	}
}

func TestDecodeQuery(t *testing.T) {
	type query struct {
		X *uint32 `form:"x"`
		Y string  `form:"y"`
	}
	q := query{}
	require.NoError(t, DecodeQuery(httptest.NewRequest(http.MethodGet, "/?x=3&y=ab", nil), &q))
	require.Equal(t, uint32(3), *q.X)
	require.Equal(t, "ab", q.Y)

	err := DecodeQuery(httptest.NewRequest(http.MethodGet, "/?x=-3", nil), &query{})
	require.ErrorIs(t, err, serrors.ErrMalformedRequest)
}

func TestWriteError_UsesTaxonomy(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), serrors.Unprocessable("deptno [1] can not delete."))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"message":"deptno [1] can not delete."}`, rec.Body.String())
}
