package logging

import (
	"context"
	"log/slog"
	"os"
)

// ctxKey is the key used to store the logger in a context.
// Using a custom type prevents collisions.
type ctxKey string

const loggerKey = ctxKey("logger")

// New builds the process-wide base logger. Production gets JSON on stdout at
// info level; everything else gets text at debug level.
func New(isProduction bool) *slog.Logger {
	var handler slog.Handler
	if isProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

// WithLogger returns a context carrying the given logger, typically enriched
// with request- or operation-scoped fields by the caller.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromCtx retrieves the scoped logger from the context. It returns the default
// logger if none was attached.
func FromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
