package temple

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templekit/templekit/pkg/authn"
	"github.com/templekit/templekit/pkg/httperr"
)

// Binder binds a resolved connection alias to the request's execution scope.
// Implementations return a derived context carrying a request-scoped store
// handle; the binding must be invisible to concurrently executing requests.
// *switchboard.Switchboard satisfies this interface.
type Binder interface {
	Bind(ctx context.Context, connectionAlias string) (context.Context, error)
}

// BinderFunc is an adapter to allow ordinary functions as Binders.
type BinderFunc func(ctx context.Context, connectionAlias string) (context.Context, error)

// Bind calls the function.
func (f BinderFunc) Bind(ctx context.Context, connectionAlias string) (context.Context, error) {
	return f(ctx, connectionAlias)
}

// RouteMiddleware is the pre-authentication phase of the tenant pipeline.
// Per request it resolves the requested temple (header > body > route >
// query), falls back to the unverified credential hint for routing only,
// looks the identifier up in the registry, and binds a request-scoped store
// handle so that authentication can query the right store.
//
// Nothing here is an authorization decision. A missing or unknown hint
// degrades silently and lets authentication fail naturally; only an
// explicitly requested unknown temple is surfaced as 404.
func RouteMiddleware(registry Registry, binder Binder, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			requested, err := cfg.resolver.Resolve(r)
			if err != nil {
				// Resolver failures are recoverable pre-auth: log and fall
				// through to absent-tenant handling.
				cfg.log.DebugContext(r.Context(), "requested temple resolution failed",
					slog.String("error", err.Error()))
				requested = ""
			}
			// The raw value is preserved: opaque identifier tokens are
			// case-sensitive, so normalization applies only to the copy
			// used for registry routing.
			requested = strings.TrimSpace(requested)

			// Record the requested value, even when empty, so the
			// post-auth validator can distinguish "nothing requested"
			// from "middleware never ran".
			ctx := WithRequested(r.Context(), requested)

			routingID := NormalizeID(requested)
			explicit := requested != ""
			opaque := false
			if explicit && cfg.decrypter != nil && cfg.decrypter.IsOpaque(requested) {
				// An opaque token is not a plain identifier: decryption
				// failure or a miss on the raw value degrades silently, in
				// line with the routing hint below.
				opaque = true
				if decrypted, err := cfg.decrypter.Decrypt(requested); err == nil {
					routingID = NormalizeID(decrypted)
				} else {
					cfg.log.DebugContext(ctx, "requested temple token decryption failed",
						slog.String("error", err.Error()))
				}
			}
			if !explicit && cfg.hint != nil {
				if hinted, ok := cfg.hint(r); ok {
					routingID = NormalizeID(hinted)
				}
			}

			if routingID == "" {
				// No tenant designation at all. Proceed unbound; the
				// authentication and validation layers own the outcome.
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			desc, err := registry.Lookup(ctx, routingID)
			if err != nil {
				switch {
				case errors.Is(err, ErrTempleNotFound) && (!explicit || opaque):
					// The unverified hint or an opaque token pointed at an
					// unknown temple. Not an error: authentication will
					// reject the credential against whatever store is (not)
					// bound.
					cfg.log.DebugContext(ctx, "temple hint did not resolve",
						slog.String("identifier", routingID))
					next.ServeHTTP(w, r.WithContext(ctx))
				case errors.Is(err, ErrTempleNotFound):
					httperr.Write(w, httperr.ErrTempleUnknown)
				default:
					// Registry backend failure: fail closed, never grant.
					cfg.log.ErrorContext(ctx, "temple registry lookup failed",
						slog.String("identifier", routingID),
						slog.String("error", err.Error()))
					httperr.Write(w, httperr.ErrInternalServerError)
				}
				return
			}

			if binder != nil {
				boundCtx, err := binder.Bind(ctx, desc.ConnectionAlias)
				if err != nil {
					cfg.recorder.BindFailure(desc.ConnectionAlias)
					cfg.log.ErrorContext(ctx, "temple store binding failed",
						slog.String("temple_id", desc.ID),
						slog.String("connection_alias", desc.ConnectionAlias),
						slog.String("error", err.Error()))
					if errors.Is(err, ErrUnknownConnectionAlias) {
						// The registry named an alias the binder has no
						// store for. A misconfiguration, not an outage.
						httperr.Write(w, httperr.ErrInternalServerError)
						return
					}
					httperr.Write(w, httperr.ErrStoreUnavailable)
					return
				}
				ctx = boundCtx
			}

			ctx = WithTemple(ctx, desc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAccess is the post-authentication phase of the tenant pipeline.
// It re-derives the tenant from the now-trusted principal, compares it to
// the originally requested temple and rejects the request on denial.
// Exactly one authoritative decision is made per request, here.
func RequireAccess(validator *Validator, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			principal, ok := authn.PrincipalFromContext(ctx)
			if !ok {
				httperr.Write(w, httperr.ErrUnauthenticated)
				return
			}

			trusted, _ := authn.TrustedClaimsFromContext(ctx)
			requested, _ := RequestedFromContext(ctx)
			desc, _ := FromContext(ctx)

			decision := validator.Validate(ctx, trusted, requested, principal, desc)
			cfg.recorder.Decision(decision)

			if !decision.Granted {
				switch decision.Reason {
				case ReasonNotSpecified:
					httperr.Write(w, httperr.ErrTempleNotSpecified)
				case ReasonTempleInactive:
					httperr.Write(w, httperr.ErrTempleForbidden.
						With("reason", string(ReasonTempleInactive)))
				default:
					var claimed string
					if trusted != nil {
						claimed = trusted.TempleID
						if claimed == "" {
							claimed = trusted.TempleCode
						}
					}
					httperr.Write(w, httperr.ErrTempleForbidden.
						With("requested_temple", requested).
						With("claim_temple", claimed))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
