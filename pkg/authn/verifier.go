package authn

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verifier validates bearer credentials with HMAC-SHA256 and extracts the
// trusted principal and tenant claims from them.
type Verifier struct {
	signingKey []byte
	ttl        time.Duration
}

// DefaultTokenTTL is used by Issue when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

// NewVerifier creates a Verifier with the provided signing key.
// The key should be at least 32 bytes for adequate security with HS256.
func NewVerifier(signingKey []byte) (*Verifier, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Verifier{signingKey: signingKey, ttl: DefaultTokenTTL}, nil
}

// Verify parses and validates a credential, returning the authenticated
// principal and the trusted tenant claims. Expired tokens are distinguished
// from malformed or badly signed ones so callers can surface the difference.
func (v *Verifier) Verify(tokenString string) (Principal, *TrustedClaims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		// Reject unexpected algorithms to prevent algorithm confusion attacks.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, nil, errors.Join(ErrTokenExpired, err)
		}
		return Principal{}, nil, errors.Join(ErrTokenInvalid, err)
	}
	if !token.Valid {
		return Principal{}, nil, ErrTokenInvalid
	}

	principal := Principal{
		ID:          claims.Subject,
		Roles:       claims.Roles,
		CrossTemple: claims.CrossTemple,
	}

	trusted := &TrustedClaims{
		TempleID:   claims.TempleID,
		TempleCode: claims.TempleCode,
		Subject:    claims.Subject,
	}
	if claims.ExpiresAt != nil {
		trusted.ExpiresAt = claims.ExpiresAt.Time
	}

	return principal, trusted, nil
}

// Issue mints a signed credential for the given claims. Registered temporal
// claims and a unique jti are filled in automatically.
func (v *Verifier) Issue(claims Claims) (string, error) {
	now := time.Now()
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(v.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.signingKey)
}
