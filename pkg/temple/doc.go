// Package temple implements the tenant resolution and access-control
// pipeline for multi-tenant deployments where each tenant ("temple") owns
// an isolated data store.
//
// # Two-phase design
//
// The pipeline runs in two phases with very different trust levels:
//
// Phase one, before authentication, is untrusted routing. The requested
// temple is resolved from the request with strict precedence (explicit
// header, then body field, then route parameter, then query parameter;
// first present source wins). When no source is present, an UNVERIFIED hint
// read from the bearer credential payload selects a store so that
// authentication itself can query the right tenant's data. The registry
// maps the identifier to a connection alias and a Binder attaches a
// request-scoped store handle to the context.
//
// Phase two, after authentication, is the trusted gate. The Validator
// compares the verified principal's temple claims against the requested
// temple: id match, code match, decrypted opaque token match, and finally
// the cross-temple override capability, in that order. Exactly one
// authoritative decision is made per request, and only trusted claims ever
// grant access.
//
// # Usage
//
//	registry := temple.NewDirectory(pgRegistry)
//	validator := temple.NewValidator(temple.WithDecrypter(cipher))
//
//	r := chi.NewRouter()
//	r.Use(temple.RouteMiddleware(registry, switchboard))
//	r.Use(authn.Middleware(verifier))
//	r.Use(temple.RequireAccess(validator))
//
// # Invariants
//
// The unverified credential hint is used exclusively to pick a connection
// before authentication; by itself it can never unlock tenant-scoped data.
// Connection bindings are request-scoped and never leak between requests.
// Registry lookup failure is a hard stop, never a silent default. Tenant
// status is enforced only post-authentication so that unauthenticated
// callers cannot probe for tenant existence.
package temple
