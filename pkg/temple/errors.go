package temple

import "errors"

var (
	// ErrTempleNotFound is returned when no temple matches an identifier.
	ErrTempleNotFound = errors.New("temple not found")

	// ErrTempleNotSpecified is returned when a tenant-scoped request carries
	// no temple designation in any source.
	ErrTempleNotSpecified = errors.New("temple not specified")

	// ErrTempleInactive is returned when a temple is suspended or inactive.
	ErrTempleInactive = errors.New("temple is not active")

	// ErrNoTempleInContext is returned when a temple descriptor is required
	// but absent from the request context.
	ErrNoTempleInContext = errors.New("no temple in context")

	// ErrUnknownConnectionAlias is returned by binders when the registry
	// names a connection alias no backing store is configured for. Unlike a
	// probe failure this is a deployment misconfiguration, not a transient
	// outage, and the routing middleware surfaces it as a server error
	// rather than service-unavailable.
	ErrUnknownConnectionAlias = errors.New("unknown connection alias")
)
