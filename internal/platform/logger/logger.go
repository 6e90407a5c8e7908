package logger

import (
	"context"
)

// Logger is the logging interface used throughout the application.
// Keeping it minimal lets the underlying implementation be swapped
// without touching call sites.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}
