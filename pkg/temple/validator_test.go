package temple_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templekit/templekit/pkg/authn"
	"github.com/templekit/templekit/pkg/idcipher"
	"github.com/templekit/templekit/pkg/temple"
)

// capturingHandler collects log records so tests can assert on the
// override audit trail.
type capturingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(string) slog.Handler { return h }

func (h *capturingHandler) recordsAt(level slog.Level) []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []slog.Record
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

func activeTemple(id, code string) *temple.Temple {
	return &temple.Temple{
		ID:              id,
		Code:            code,
		ConnectionAlias: "shard-a",
		Status:          temple.StatusActive,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	v := temple.NewValidator()
	staff := authn.Principal{ID: "user-1", Roles: []string{"staff"}}

	t.Run("grants on id match", func(t *testing.T) {
		t.Parallel()

		trusted := &authn.TrustedClaims{TempleID: "temple1"}
		d := v.Validate(context.Background(), trusted, "temple1", staff, activeTemple("temple1", ""))
		assert.True(t, d.Granted)
		assert.Equal(t, temple.MatchedByID, d.MatchedBy)
	})

	t.Run("grants on code match case-insensitively", func(t *testing.T) {
		t.Parallel()

		trusted := &authn.TrustedClaims{TempleCode: "temple2"}
		d := v.Validate(context.Background(), trusted, "TempLE2", staff, activeTemple("t2", "temple2"))
		assert.True(t, d.Granted)
		assert.Equal(t, temple.MatchedByCode, d.MatchedBy)
	})

	t.Run("denies on mismatch without override", func(t *testing.T) {
		t.Parallel()

		trusted := &authn.TrustedClaims{TempleID: "temple2"}
		d := v.Validate(context.Background(), trusted, "temple3", staff, activeTemple("temple3", ""))
		assert.False(t, d.Granted)
		assert.Equal(t, temple.ReasonNoMatch, d.Reason)
	})

	t.Run("short-circuits to not specified before matching", func(t *testing.T) {
		t.Parallel()

		// Even a perfectly matching claim cannot save a request that
		// never designated a tenant.
		trusted := &authn.TrustedClaims{TempleID: "temple1"}
		d := v.Validate(context.Background(), trusted, "", staff, nil)
		assert.False(t, d.Granted)
		assert.Equal(t, temple.ReasonNotSpecified, d.Reason)
	})

	t.Run("denies nil trusted claims", func(t *testing.T) {
		t.Parallel()

		d := v.Validate(context.Background(), nil, "temple1", staff, activeTemple("temple1", ""))
		assert.False(t, d.Granted)
		assert.Equal(t, temple.ReasonNoMatch, d.Reason)
	})

	t.Run("denies suspended temple even on id match", func(t *testing.T) {
		t.Parallel()

		suspended := activeTemple("temple1", "")
		suspended.Status = temple.StatusSuspended

		trusted := &authn.TrustedClaims{TempleID: "temple1"}
		d := v.Validate(context.Background(), trusted, "temple1", staff, suspended)
		assert.False(t, d.Granted)
		assert.Equal(t, temple.ReasonTempleInactive, d.Reason)
	})

	t.Run("empty claim never matches empty side", func(t *testing.T) {
		t.Parallel()

		trusted := &authn.TrustedClaims{}
		d := v.Validate(context.Background(), trusted, "temple1", staff, activeTemple("temple1", ""))
		assert.False(t, d.Granted)
	})
}

func TestValidateDecrypted(t *testing.T) {
	t.Parallel()

	key, err := idcipher.GenerateKey()
	require.NoError(t, err)
	cipher, err := idcipher.New(key)
	require.NoError(t, err)

	v := temple.NewValidator(temple.WithDecrypter(cipher))
	staff := authn.Principal{ID: "user-1"}

	t.Run("grants when opaque token decrypts to claimed id", func(t *testing.T) {
		t.Parallel()

		token, err := cipher.Encrypt("temple1")
		require.NoError(t, err)
		require.True(t, cipher.IsOpaque(token))

		trusted := &authn.TrustedClaims{TempleID: "temple1"}
		d := v.Validate(context.Background(), trusted, token, staff, activeTemple("temple1", ""))
		assert.True(t, d.Granted)
		assert.Equal(t, temple.MatchedByDecrypted, d.MatchedBy)
	})

	t.Run("undecryptable opaque value is no match, not an error", func(t *testing.T) {
		t.Parallel()

		trusted := &authn.TrustedClaims{TempleID: "temple1"}
		opaque := "this-is-long-enough-to-look-opaque-but-is-garbage"
		d := v.Validate(context.Background(), trusted, opaque, staff, nil)
		assert.False(t, d.Granted)
		assert.Equal(t, temple.ReasonNoMatch, d.Reason)
	})

	t.Run("short values skip decryption", func(t *testing.T) {
		t.Parallel()

		trusted := &authn.TrustedClaims{TempleID: "temple1"}
		d := v.Validate(context.Background(), trusted, "temple9", staff, nil)
		assert.False(t, d.Granted)
	})
}

func TestValidateOverride(t *testing.T) {
	t.Parallel()

	t.Run("override grants any pair and logs a warning", func(t *testing.T) {
		t.Parallel()

		captured := &capturingHandler{}
		v := temple.NewValidator(temple.WithValidatorLogger(slog.New(captured)))

		admin := authn.Principal{ID: "admin-1", CrossTemple: true}
		trusted := &authn.TrustedClaims{TempleID: "temple2"}

		d := v.Validate(context.Background(), trusted, "temple3", admin, activeTemple("temple3", ""))
		require.True(t, d.Granted)
		assert.Equal(t, temple.MatchedByOverride, d.MatchedBy)

		warnings := captured.recordsAt(slog.LevelWarn)
		require.Len(t, warnings, 1)

		attrs := map[string]string{}
		warnings[0].Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.String()
			return true
		})
		assert.Equal(t, "admin-1", attrs["principal_id"])
		assert.Equal(t, "temple2", attrs["claim_temple_id"])
		assert.Equal(t, "temple3", attrs["requested_temple"])
	})

	t.Run("override is consulted only after normal matching", func(t *testing.T) {
		t.Parallel()

		captured := &capturingHandler{}
		v := temple.NewValidator(temple.WithValidatorLogger(slog.New(captured)))

		admin := authn.Principal{ID: "admin-1", CrossTemple: true}
		trusted := &authn.TrustedClaims{TempleID: "temple1"}

		d := v.Validate(context.Background(), trusted, "temple1", admin, activeTemple("temple1", ""))
		require.True(t, d.Granted)
		assert.Equal(t, temple.MatchedByID, d.MatchedBy)
		assert.Empty(t, captured.recordsAt(slog.LevelWarn))
	})

	t.Run("override still requires a requested tenant", func(t *testing.T) {
		t.Parallel()

		v := temple.NewValidator(temple.WithValidatorLogger(slog.New(&capturingHandler{})))
		admin := authn.Principal{ID: "admin-1", CrossTemple: true}

		d := v.Validate(context.Background(), nil, "", admin, nil)
		assert.False(t, d.Granted)
		assert.Equal(t, temple.ReasonNotSpecified, d.Reason)
	})
}
