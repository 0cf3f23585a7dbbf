package authn

import (
	"errors"
	"net/http"
	"strings"

	"github.com/templekit/templekit/pkg/httperr"
)

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. Returns ErrMissingToken when the header is absent or malformed.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}

	return parts[1], nil
}

// Middleware verifies the bearer credential and injects the authenticated
// principal and trusted tenant claims into the request context. Requests
// without a credential are rejected as unauthenticated; expired credentials
// are distinguished from malformed ones.
func Middleware(verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				httperr.Write(w, httperr.ErrUnauthenticated)
				return
			}

			principal, trusted, err := verifier.Verify(tokenString)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					httperr.Write(w, httperr.ErrTokenExpired)
					return
				}
				httperr.Write(w, httperr.ErrTokenInvalid)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			ctx = WithTrustedClaims(ctx, trusted)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
