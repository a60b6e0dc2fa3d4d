// Package logging defines the structured-logging interface the server
// components depend on; the slog adapter is the only implementation in
// production, tests substitute no-ops.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "photo stored", "uid", uid, "filename", filename)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn is for degraded but non-fatal conditions, e.g. a failed
	// notification dispatch.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs. Components tag themselves with a "module" key this way.
	With(args ...any) Logger
}
