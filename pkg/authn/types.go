package authn

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload carried by temple-scoped credentials.
type Claims struct {
	TempleID    string   `json:"temple_id,omitempty"`
	TempleCode  string   `json:"temple_code,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	CrossTemple bool     `json:"cross_temple,omitempty"`
	jwt.RegisteredClaims
}

// TempleHint is tenant routing information read from an UNVERIFIED credential
// payload. It exists solely so authentication can be pointed at the right
// per-tenant store before the credential has been verified. It is never
// authorization evidence: nothing downstream may grant access based on it.
type TempleHint struct {
	TempleID   string
	TempleCode string
	Subject    string
	ExpiresAt  time.Time
}

// Identifier returns the preferred routing identifier from the hint,
// or empty string when the hint carries none.
func (h *TempleHint) Identifier() string {
	if h == nil {
		return ""
	}
	if h.TempleID != "" {
		return h.TempleID
	}
	return h.TempleCode
}

// TrustedClaims is tenant information derived from a VERIFIED credential.
// This is the only claim shape the access validator accepts.
type TrustedClaims struct {
	TempleID   string
	TempleCode string
	Subject    string
	ExpiresAt  time.Time
}

// Principal is the authenticated caller. CrossTemple is a capability flag
// rather than a role-name comparison so that the cross-tenant override does
// not depend on brittle string matching.
type Principal struct {
	ID          string
	Roles       []string
	CrossTemple bool
}
