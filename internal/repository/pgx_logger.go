package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
// I keep this tiny: it only translates levels and passes fields through.
type pgxLogger struct {
	logger zerolog.Logger
}

// newPgxLogger tags SQL output with component=pgx.
// I like to tag the component explicitly so SQL noise stays filterable.
func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

// Log implements tracelog.Logger. SQL text and args are promoted to their own
// fields at trace level; seed batches carry large bodies, so args are dropped elsewhere.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event

	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
		if s, ok := data["sql"].(string); ok {
			event = event.Str("sql", s)
			delete(data, "sql")
		}
		if args, ok := data["args"]; ok {
			event = event.Interface("args", args)
			delete(data, "args")
		}
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}

	if level != tracelog.LogLevelTrace {
		delete(data, "args")
	}
	if len(data) > 0 {
		event = event.Fields(data)
	}
	event.Msg(msg)
}
