package authn

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{ name string }

var (
	principalContextKey = &contextKey{name: "authn_principal"}
	claimsContextKey    = &contextKey{name: "authn_trusted_claims"}
)

// WithPrincipal adds the authenticated principal to the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(Principal)
	return p, ok
}

// WithTrustedClaims adds verified tenant claims to the context.
func WithTrustedClaims(ctx context.Context, c *TrustedClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, c)
}

// TrustedClaimsFromContext retrieves verified tenant claims from the context.
func TrustedClaimsFromContext(ctx context.Context) (*TrustedClaims, bool) {
	c, ok := ctx.Value(claimsContextKey).(*TrustedClaims)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

// LoggerExtractor returns a logger context extractor emitting the principal ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := PrincipalFromContext(ctx); ok && p.ID != "" {
			return slog.String("principal_id", p.ID), true
		}
		return slog.Attr{}, false
	}
}
