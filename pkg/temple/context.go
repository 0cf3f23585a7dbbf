package temple

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{ name string }

var (
	templeContextKey    = &contextKey{name: "temple"}
	requestedContextKey = &contextKey{name: "requested_temple"}
)

// WithTemple adds a temple descriptor to the context.
func WithTemple(ctx context.Context, t *Temple) context.Context {
	return context.WithValue(ctx, templeContextKey, t)
}

// FromContext retrieves the temple descriptor from the context.
func FromContext(ctx context.Context) (*Temple, bool) {
	t, ok := ctx.Value(templeContextKey).(*Temple)
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

// MustFromContext retrieves the temple from the context.
// Panics if no temple is found. Use this only in handlers that cannot run
// without a bound temple.
func MustFromContext(ctx context.Context) *Temple {
	t, ok := FromContext(ctx)
	if !ok {
		panic("temple: no temple in context")
	}
	return t
}

// WithRequested records the raw requested temple value for the request.
// An empty value is recorded too, so the validator can distinguish "nothing
// requested" from "middleware never ran".
func WithRequested(ctx context.Context, identifier string) context.Context {
	return context.WithValue(ctx, requestedContextKey, identifier)
}

// RequestedFromContext retrieves the requested temple value from the context.
func RequestedFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestedContextKey).(string)
	return v, ok
}

// LoggerExtractor returns a logger context extractor emitting the temple ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if t, ok := FromContext(ctx); ok {
			return slog.String("temple_id", t.ID), true
		}
		return slog.Attr{}, false
	}
}
