package logging

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/sirupsen/logrus"
)

// PgxLogger forwards pgx trace events to logrus.
type PgxLogger struct {
	entry *logrus.Entry
}

func NewPgxLogger(logger *logrus.Logger) *PgxLogger {
	return &PgxLogger{entry: logger.WithField("component", "pgx")}
}

func (l *PgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	entry := l.entry.WithContext(ctx).WithFields(logrus.Fields(data))
	switch level {
	case tracelog.LogLevelTrace:
		entry.Trace(msg)
	case tracelog.LogLevelDebug:
		entry.Debug(msg)
	case tracelog.LogLevelInfo:
		entry.Info(msg)
	case tracelog.LogLevelWarn:
		entry.Warn(msg)
	case tracelog.LogLevelError:
		entry.Error(msg)
	default:
		entry.WithField("pgx-level", level.String()).Error(msg)
	}
}

// NewPgxTracer returns a query tracer logging at or above level.
func NewPgxTracer(logger *logrus.Logger, level tracelog.LogLevel) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   NewPgxLogger(logger),
		LogLevel: level,
	}
}
