// Package logging configures the launcher's zerolog logger.
//
// The launcher writes human-oriented progress to stderr through
// zerolog.ConsoleWriter so that stdout stays free for command output
// (status, config) and for the dashboard once it has been exec'd. The
// logger travels in context.Context; packages fetch it with FromContext
// and tag their events with a "component" field.
package logging

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to w. Debug events are only emitted
// when verbose is true.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}

	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx. A context without a
// logger yields a disabled logger rather than zerolog's global one, so
// library code never writes to an unexpected destination.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// Component returns the context logger tagged with the given component name.
func Component(ctx context.Context, name string) zerolog.Logger {
	return FromContext(ctx).With().Str("component", name).Logger()
}
