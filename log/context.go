package log

import "context"

type contextKey struct{}

// ToContext returns a copy of ctx carrying logger.
func ToContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the Logger carried by ctx, or nil if none was set.
func FromContext(ctx context.Context) Logger {
	logger, _ := ctx.Value(contextKey{}).(Logger)
	return logger
}
