package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/configuration"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	app := application.New(&application.ApplicationOptions{Driver: configuration.DriverMemory, Logger: logger})
	r := mux.NewRouter()
	NewSandboxController(app).Register(r)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func TestTextEndpoints(t *testing.T) {
	r := newRouter(t)
	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   string
	}{
		{"hello", http.MethodGet, "/", "", "Hello World!"},
		{"hey", http.MethodGet, "/hey", "", "Hello there!"},
		{"echo", http.MethodPost, "/echo", "ping 日本", "ping 日本"},
		{"path2", http.MethodGet, "/path2/3/4", "", "param1: 3, param2: 4"},
		{"path3 keeps slashes", http.MethodGet, "/path3/a/b/c", "", "param: a/b/c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(r, tc.method, tc.target, tc.body)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tc.want, rec.Body.String())
			require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}
}

func TestPath1(t *testing.T) {
	r := newRouter(t)

	rec := serve(r, http.MethodGet, "/path1/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"value":42}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/path1/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Bad Request. [can not parse \"abc\" to a u32]"}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/path2/1/x", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJSON(t *testing.T) {
	r := newRouter(t)

	rec := serve(r, http.MethodPost, "/json", `{"val1":7,"val2":"seven"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"res_val1":7,"res_val2":"seven"}`, rec.Body.String())

	for _, body := range []string{`{"val1":7}`, `{"val1":-1,"val2":"x"}`, `not json`} {
		rec = serve(r, http.MethodPost, "/json", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestGetValidate(t *testing.T) {
	r := newRouter(t)
	cases := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"x only", "?x=5", http.StatusOK, `{"x":5}`},
		{"x and y", "?x=10&y=abc", http.StatusOK, `{"x":10,"y":"abc"}`},
		{"missing x", "", http.StatusBadRequest, `{"message":"Bad Request. [x: is required]"}`},
		{"x out of range", "?x=11", http.StatusBadRequest, `{"message":"Bad Request. [x: must be between 1 and 10]"}`},
		{
			"both invalid", "?x=0&y=abcdef", http.StatusBadRequest,
			`{"message":"Bad Request. [x: must be between 1 and 10, y: must be between 2 and 5 characters]"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, "/validate"+tc.query, "")
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			require.JSONEq(t, tc.body, rec.Body.String())
		})
	}

	rec := serve(r, http.MethodGet, "/validate?x=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Bad Request. [query x")
}

func TestPostValidate(t *testing.T) {
	r := newRouter(t)

	rec := serve(r, http.MethodPost, "/validate",
		`{"name":"taro","birth_month":4,"email":"taro@example.com","hp_url":"https://example.com","post_code":"123-4567"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t,
		`{"name":"taro","birth_month":4,"email":"taro@example.com","hp_url":"https://example.com","post_code":"123-4567"}`,
		rec.Body.String())

	rec = serve(r, http.MethodPost, "/validate", `{"name":"taro","birth_month":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"taro","birth_month":1,"email":null,"hp_url":null,"post_code":null}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/validate",
		`{"name":"","birth_month":13,"email":"nope","hp_url":"nope","post_code":"12"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Bad Request. [`+
		`name: enter a name of 1 to 10 characters, `+
		`birth_month: enter a birth month between 1 and 12, `+
		`email: email address is malformed, `+
		`hp_url: URL is malformed, `+
		`post_code: post code is malformed]"}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/validate", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"Bad Request. [name: name is required, birth_month: birth month is required]"}`, rec.Body.String())
}
