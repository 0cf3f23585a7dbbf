package authn

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

// PeekTempleHint extracts an unverified tenant hint from a bearer credential
// WITHOUT checking its signature. This is a deliberate, narrow trust
// boundary: authentication must query a tenant-specific store to find the
// user, but authentication has not run yet, so the tenant hint is read in
// the clear from the token payload. The value drives only which store is
// queried, never an authorization outcome.
//
// A credential that does not have exactly three dot-separated segments, or
// whose payload does not decode to structured claims, yields (nil, false).
// That is not an error: downstream authentication is responsible for
// rejecting bad credentials.
func PeekTempleHint(tokenString string, log *slog.Logger) (*TempleHint, bool) {
	if tokenString == "" {
		return nil, false
	}

	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		if log != nil {
			log.Debug("temple hint pre-parse failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	hint := &TempleHint{
		TempleID:   claims.TempleID,
		TempleCode: claims.TempleCode,
		Subject:    claims.Subject,
	}
	if claims.ExpiresAt != nil {
		hint.ExpiresAt = claims.ExpiresAt.Time
	}

	if hint.TempleID == "" && hint.TempleCode == "" {
		return nil, false
	}

	return hint, true
}
