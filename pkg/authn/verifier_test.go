package authn_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templekit/templekit/pkg/authn"
)

var testSigningKey = []byte("test-signing-key-of-adequate-length")

func newTestVerifier(t *testing.T) *authn.Verifier {
	t.Helper()

	v, err := authn.NewVerifier(testSigningKey)
	require.NoError(t, err)
	return v
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()

		_, err := authn.NewVerifier(nil)
		assert.ErrorIs(t, err, authn.ErrMissingSigningKey)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(t)

	t.Run("round trip preserves claims", func(t *testing.T) {
		t.Parallel()

		token, err := v.Issue(authn.Claims{
			TempleID:   "temple1",
			TempleCode: "first-temple",
			Roles:      []string{"staff"},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject: "user-42",
			},
		})
		require.NoError(t, err)

		principal, trusted, err := v.Verify(token)
		require.NoError(t, err)

		assert.Equal(t, "user-42", principal.ID)
		assert.Equal(t, []string{"staff"}, principal.Roles)
		assert.False(t, principal.CrossTemple)

		assert.Equal(t, "temple1", trusted.TempleID)
		assert.Equal(t, "first-temple", trusted.TempleCode)
		assert.Equal(t, "user-42", trusted.Subject)
		assert.WithinDuration(t, time.Now().Add(authn.DefaultTokenTTL), trusted.ExpiresAt, time.Minute)
	})

	t.Run("carries cross-temple capability", func(t *testing.T) {
		t.Parallel()

		token, err := v.Issue(authn.Claims{
			TempleID:    "temple1",
			CrossTemple: true,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject: "admin-1",
			},
		})
		require.NoError(t, err)

		principal, _, err := v.Verify(token)
		require.NoError(t, err)
		assert.True(t, principal.CrossTemple)
	})

	t.Run("expired token is distinguished", func(t *testing.T) {
		t.Parallel()

		token, err := v.Issue(authn.Claims{
			TempleID: "temple1",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		require.NoError(t, err)

		_, _, err = v.Verify(token)
		assert.ErrorIs(t, err, authn.ErrTokenExpired)
	})

	t.Run("token signed with another key is invalid", func(t *testing.T) {
		t.Parallel()

		other, err := authn.NewVerifier([]byte("a-completely-different-key-here"))
		require.NoError(t, err)

		token, err := other.Issue(authn.Claims{TempleID: "temple1"})
		require.NoError(t, err)

		_, _, err = v.Verify(token)
		assert.ErrorIs(t, err, authn.ErrTokenInvalid)
	})

	t.Run("malformed token is invalid", func(t *testing.T) {
		t.Parallel()

		_, _, err := v.Verify("not.a.token")
		assert.ErrorIs(t, err, authn.ErrTokenInvalid)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		t.Parallel()

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, authn.Claims{TempleID: "temple1"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, _, err = v.Verify(token)
		assert.ErrorIs(t, err, authn.ErrTokenInvalid)
	})
}

func TestIssue(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(t)

	t.Run("fills jti and temporal claims", func(t *testing.T) {
		t.Parallel()

		token, err := v.Issue(authn.Claims{TempleID: "temple1"})
		require.NoError(t, err)

		var claims authn.Claims
		_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
		require.NoError(t, err)

		assert.NotEmpty(t, claims.ID)
		require.NotNil(t, claims.IssuedAt)
		require.NotNil(t, claims.ExpiresAt)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
	})

	t.Run("distinct tokens get distinct jti", func(t *testing.T) {
		t.Parallel()

		first, err := v.Issue(authn.Claims{TempleID: "temple1"})
		require.NoError(t, err)
		second, err := v.Issue(authn.Claims{TempleID: "temple1"})
		require.NoError(t, err)

		var a, b authn.Claims
		_, _, err = jwt.NewParser().ParseUnverified(first, &a)
		require.NoError(t, err)
		_, _, err = jwt.NewParser().ParseUnverified(second, &b)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
	})
}
