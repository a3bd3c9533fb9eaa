package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every line logged through ctx with the subsystem name.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithTransferID tags log lines belonging to one transfer.
func WithTransferID(ctx context.Context, id string) context.Context {
	return withField(ctx, "transfer_id", id)
}

// WithMessageType tags log lines produced while handling one inbound message.
func WithMessageType(ctx context.Context, msgType string) context.Context {
	return withField(ctx, "msg_type", msgType)
}

func withField(ctx context.Context, key, value string) context.Context {
	child := FromContext(ctx).With().Str(key, value).Logger()
	return WithContext(ctx, child)
}
