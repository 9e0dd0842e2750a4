package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestPgxLogger_MapsLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(logrus.DebugLevel, &buf)

	NewPgxLogger(logger).Log(context.Background(), tracelog.LogLevelWarn, "Query", map[string]any{"sql": "select 1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warning", line["level"])
	require.Equal(t, "Query", line["msg"])
	require.Equal(t, "select 1", line["sql"])
	require.Equal(t, "pgx", line["component"])
}

func TestFileLogger_CreatesParentDirectories(t *testing.T) {
	path := t.TempDir() + "/nested/app.log"
	f, logger, err := FileLogger(logrus.InfoLevel, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
