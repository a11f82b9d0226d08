// Package logging defines the structured-logging interface shared by the
// client and server. The only implementation wraps log/slog; the interface
// keeps the rest of the code independent of the backend.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// alternating keys and values:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs an unusual but non-fatal condition.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
