package switchboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Conn is a request-scoped handle to the store bound for one request.
// The pool behind it is shared; the handle itself must not outlive the
// request it was bound for.
type Conn struct {
	// Alias is the connection alias the handle was bound for.
	Alias string

	// Pool is the shared connection pool serving the alias.
	Pool *pgxpool.Pool
}

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithConn attaches a bound store handle to the context.
func WithConn(ctx context.Context, conn *Conn) context.Context {
	return context.WithValue(ctx, contextKey{}, conn)
}

// ConnFromContext retrieves the bound store handle from the context.
func ConnFromContext(ctx context.Context) (*Conn, bool) {
	conn, ok := ctx.Value(contextKey{}).(*Conn)
	if !ok || conn == nil {
		return nil, false
	}
	return conn, true
}

// MustConnFromContext retrieves the bound store handle from the context.
// Panics if no handle is bound. Use this only in code paths that cannot
// run before the switchboard has bound a store.
func MustConnFromContext(ctx context.Context) *Conn {
	conn, ok := ConnFromContext(ctx)
	if !ok {
		panic("switchboard: no store connection in context")
	}
	return conn
}
