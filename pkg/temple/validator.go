package temple

import (
	"context"
	"log/slog"
	"strings"

	"github.com/templekit/templekit/pkg/authn"
)

// MatchedBy records which rule granted access.
type MatchedBy string

const (
	MatchedByID        MatchedBy = "id"
	MatchedByCode      MatchedBy = "code"
	MatchedByDecrypted MatchedBy = "decrypted"
	MatchedByOverride  MatchedBy = "override"
)

// Reason records why access was denied.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonNotSpecified   Reason = "tenant_not_specified"
	ReasonNoMatch        Reason = "no_matching_tenant"
	ReasonTempleInactive Reason = "temple_inactive"
)

// AccessDecision is the single authoritative accept/deny outcome for a
// request. It is advisory to the caller: the validator never writes
// responses or calls downstream handlers itself.
type AccessDecision struct {
	Granted   bool
	Reason    Reason
	MatchedBy MatchedBy
}

// Decrypter recovers a tenant identifier from an opaque token.
// *idcipher.Cipher satisfies this interface.
type Decrypter interface {
	Decrypt(token string) (string, error)
	IsOpaque(value string) bool
}

// Validator is the post-authentication gate comparing the principal's
// trusted tenant claims against the requested tenant. It runs strictly
// after authentication and only ever consumes verified claims; the
// unverified routing hint plays no part here.
type Validator struct {
	decrypter Decrypter
	log       *slog.Logger
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithDecrypter enables the opaque-identifier fallback match.
func WithDecrypter(d Decrypter) ValidatorOption {
	return func(v *Validator) {
		v.decrypter = d
	}
}

// WithValidatorLogger sets a custom logger.
func WithValidatorLogger(log *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// NewValidator creates an access validator.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate produces the authoritative access decision for a request.
//
// When no requested tenant could be resolved at all, validation
// short-circuits to tenant_not_specified before any matching logic runs.
// Otherwise the matching rules apply in order, short-circuiting on the
// first match: trusted id, trusted code, decrypted opaque token, and
// finally the cross-tenant override capability. Anything else is denied.
//
// A suspended or inactive descriptor denies regardless of matching; status
// is enforced here, post-authentication, and nowhere earlier, so that
// unauthenticated callers cannot probe for tenant existence.
func (v *Validator) Validate(ctx context.Context, trusted *authn.TrustedClaims, requested string, principal authn.Principal, desc *Temple) AccessDecision {
	// Keep the raw value for the cipher: opaque tokens are case-sensitive
	// and must not be normalized before decryption.
	raw := strings.TrimSpace(requested)
	if raw == "" {
		return AccessDecision{Granted: false, Reason: ReasonNotSpecified}
	}
	requested = NormalizeID(raw)

	if desc != nil && !desc.IsActive() {
		return AccessDecision{Granted: false, Reason: ReasonTempleInactive}
	}

	var claimID, claimCode string
	if trusted != nil {
		claimID = NormalizeID(trusted.TempleID)
		claimCode = NormalizeID(trusted.TempleCode)
	}

	if claimID != "" && claimID == requested {
		return AccessDecision{Granted: true, MatchedBy: MatchedByID}
	}

	if claimCode != "" && claimCode == requested {
		return AccessDecision{Granted: true, MatchedBy: MatchedByCode}
	}

	if v.decrypter != nil && v.decrypter.IsOpaque(raw) {
		decrypted, err := v.decrypter.Decrypt(raw)
		if err != nil {
			// Decryption failure means "no match", never a fatal error.
			v.log.DebugContext(ctx, "requested temple token decryption failed",
				slog.String("error", err.Error()))
		} else {
			decrypted = NormalizeID(decrypted)
			if decrypted != "" && (decrypted == claimID || decrypted == claimCode) {
				return AccessDecision{Granted: true, MatchedBy: MatchedByDecrypted}
			}
		}
	}

	if principal.CrossTemple {
		// Crossing the tenant isolation boundary is the most security
		// sensitive path in the system: every grant is logged with full
		// context.
		v.log.WarnContext(ctx, "cross-temple override granted",
			slog.String("principal_id", principal.ID),
			slog.String("claim_temple_id", claimID),
			slog.String("claim_temple_code", claimCode),
			slog.String("requested_temple", requested),
		)
		return AccessDecision{Granted: true, MatchedBy: MatchedByOverride}
	}

	return AccessDecision{Granted: false, Reason: ReasonNoMatch}
}
