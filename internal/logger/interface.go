package logger

import "context"

// Logger is the leveled logger used across the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// WithPrefix returns a logger that prepends a fixed tag (e.g. a job id)
	// to every message.
	WithPrefix(prefix string) Logger
}
