// Package logger wraps zerolog.Logger with the constructors and
// context helpers used throughout the go-note-keeper server.
//
// Logger embeds zerolog.Logger, so the full zerolog API (Debug, Info,
// Err, Fatal, ...) is available directly. Request handlers should not
// hold a logger of their own: they obtain the request-scoped one via
// FromRequest or FromContext, which carries the trace id attached by
// the HTTP middleware.
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding exposes the upstream API while leaving room for helpers.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs the process-wide *Logger for the given role label
// (e.g. "note-server").
//
// The logger emits JSON to stdout with:
//   - global level Debug;
//   - a "role" field for filtering different components;
//   - a timestamp on every entry;
//   - a "func" caller field carrying the fully-qualified function name.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}

	zerolog.CallerFieldName = "func"
	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the
// receiver. The child can be enriched with extra context fields without
// touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request context by
// log.Ctx and returns it as a *Logger. Used by handlers downstream of the
// trace-id middleware.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by log.Ctx.
// When no logger was attached zerolog falls back to its global logger,
// so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
