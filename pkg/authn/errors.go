package authn

import "errors"

var (
	// ErrMissingSigningKey is returned when a verifier is created without a key.
	ErrMissingSigningKey = errors.New("missing signing key")

	// ErrMissingToken is returned when no bearer credential is present.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrTokenExpired is returned when a well-formed credential is expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned when a credential is malformed or its
	// signature does not verify.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrNoPrincipalInContext is returned when an authenticated principal is
	// required but absent from the request context.
	ErrNoPrincipalInContext = errors.New("no principal in context")
)
