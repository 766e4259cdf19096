package logging

import (
	"context"
	"log/slog"
)

// contextKey is the key used to store the logger in a context.
// Using an unexported type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// NewContext returns a context carrying an operation-scoped logger.
// Calling modules enrich the base logger with their own fields (request id,
// originating document, ...) before handing the context to the core.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the operation-scoped logger, falling back to the
// default logger when the caller did not attach one.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
