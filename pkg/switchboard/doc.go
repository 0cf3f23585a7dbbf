// Package switchboard binds tenant connection aliases to request-scoped
// store handles backed by shared pgx connection pools.
//
// The one rule that matters here: connection selection never touches
// process-global mutable configuration. The resolved store for a request is
// carried only in that request's context, so concurrent requests bound to
// different temples can never observe each other's stores. Pools themselves
// are shared per alias and created lazily on first bind.
//
// Every bind performs a bounded-time connectivity probe. A probe timeout or
// failure yields ErrStoreUnreachable, deliberately distinct from "temple
// not found" so callers can map the two to different client outcomes.
package switchboard
