package itf

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iota-uz/deptemp/pkg/commands/common"
	"github.com/iota-uz/deptemp/pkg/configuration"
)

// DatabaseURLEnv names the postgres DSN used by postgres test environments.
const DatabaseURLEnv = "ITF_DATABASE_URL"

// Drivers lists the backends every environment can be built on.
var Drivers = []string{
	configuration.DriverMemory,
	configuration.DriverSQLite,
	configuration.DriverPostgres,
}

func (tc *TestContext) configuration(tb testing.TB) *configuration.Configuration {
	tb.Helper()
	conf := &configuration.Configuration{
		Database: configuration.DatabaseOptions{
			Driver:   tc.driver,
			MaxConns: 4,
		},
		Workers:     4,
		SQLLogLevel: "silent",
	}
	switch tc.driver {
	case configuration.DriverSQLite:
		conf.Database.SQLitePath = filepath.Join(tb.TempDir(), "itf.db")
	case configuration.DriverPostgres:
		url := os.Getenv(DatabaseURLEnv)
		if url == "" {
			tb.Skipf("%s is not set", DatabaseURLEnv)
		}
		conf.Database.URL = url
		conf.Database.Opts = url
	}
	return conf
}

// prepareSchema migrates SQL stores and empties postgres tables so every
// environment starts from a blank store with identities restarted.
func prepareSchema(ctx context.Context, tb testing.TB, conf *configuration.Configuration, handles *common.Handles) {
	tb.Helper()
	migrator, closeFn, err := handles.Migrator(conf)
	if err != nil {
		tb.Fatal(err)
	}
	defer closeFn()
	if migrator == nil {
		return
	}
	if err := migrator.Up(ctx); err != nil {
		tb.Fatal(err)
	}
	if handles.Pool != nil {
		if _, err := handles.Pool.Exec(ctx, "TRUNCATE emp, dept RESTART IDENTITY CASCADE"); err != nil {
			tb.Fatal(err)
		}
	}
}

// Do sends a request through the environment's handler. A non-empty body is
// sent as JSON.
func (te *TestEnvironment) Do(tb testing.TB, method, path, body string) *httptest.ResponseRecorder {
	tb.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader).WithContext(te.Ctx)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	te.Handler.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON unmarshals a recorded response body into T.
func DecodeJSON[T any](tb testing.TB, rec *httptest.ResponseRecorder) T {
	tb.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		tb.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// Message is the client-facing message of an error response.
func Message(tb testing.TB, rec *httptest.ResponseRecorder) string {
	tb.Helper()
	return DecodeJSON[map[string]string](tb, rec)["message"]
}
