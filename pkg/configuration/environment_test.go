package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_LoadsExistingFilesOnly(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "DEPTEMP_TEST_ENV_LOAD=ok\n")

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	t.Setenv("DEPTEMP_TEST_ENV_LOAD", "")
	require.NoError(t, os.Unsetenv("DEPTEMP_TEST_ENV_LOAD"))

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("DEPTEMP_TEST_ENV_LOAD"))
}

func TestParse_ReadsEnvironment(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("WORKER", "4")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SQL_LOG_LEVEL", "warn")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/deptemp")
	t.Setenv("DB_STATEMENT_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_PATH", "")

	c := &Configuration{}
	require.NoError(t, c.parse())

	require.Equal(t, "0.0.0.0:9090", c.SocketAddress)
	require.Equal(t, 4, c.Workers)
	require.Equal(t, logrus.DebugLevel, c.LogrusLogLevel())
	require.Equal(t, tracelog.LogLevelWarn, c.PgxLogLevel())
	require.Equal(t, DriverSQLite, c.Database.Driver)
	require.Equal(t, "postgres://u:p@db:5432/deptemp", c.Database.Opts)
	require.Equal(t, 2*time.Second, c.Database.StatementTimeout)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSAllowedOrigins)
	require.NotNil(t, c.Logger())
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":    {"STORE_DRIVER": "mysql"},
		"zero workers":      {"WORKER": "0"},
		"redis without url": {"RATE_LIMIT_STORAGE": "redis", "RATE_LIMIT_REDIS_URL": ""},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", "memory")
			t.Setenv("WORKER", "10")
			t.Setenv("RATE_LIMIT_STORAGE", "memory")
			t.Setenv("LOG_PATH", "")
			for k, v := range vars {
				t.Setenv(k, v)
			}
			require.Error(t, (&Configuration{}).parse())
		})
	}
}

func TestDatabaseOptions_ConnectionStringFromParts(t *testing.T) {
	d := DatabaseOptions{Host: "db", Port: "5433", User: "app", Name: "hr", Password: "secret"}
	require.Equal(t, "host=db port=5433 user=app dbname=hr password=secret sslmode=disable", d.ConnectionString())
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
