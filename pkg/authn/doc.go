// Package authn verifies bearer credentials and carries the authenticated
// principal through the request context.
//
// It has two distinct parse paths with very different trust levels:
//
//   - PeekTempleHint reads the token payload WITHOUT signature verification.
//     It exists only so that the tenant routing pipeline can pick the right
//     per-tenant store before authentication runs. Its output must never be
//     used for authorization.
//
//   - Verifier.Verify performs full HS256 signature and temporal validation,
//     producing a Principal and TrustedClaims. Only these are accepted by
//     the access validator.
//
// The cross-tenant override is modeled as the CrossTemple capability flag on
// the principal rather than a role-name string comparison.
package authn
