package switchboard

import (
	"errors"

	"github.com/templekit/templekit/pkg/temple"
)

var (
	// ErrUnknownAlias is returned when no store is mapped to an alias.
	// This is a configuration problem, distinct from "temple not found";
	// it shares temple.ErrUnknownConnectionAlias so the routing middleware
	// can tell it apart from a transient probe failure.
	ErrUnknownAlias = temple.ErrUnknownConnectionAlias

	// ErrStoreUnreachable is returned when the connectivity probe for a
	// resolved store times out or fails.
	ErrStoreUnreachable = errors.New("temple store unreachable")

	// ErrFailedToParseConnString is returned for malformed store DSNs.
	ErrFailedToParseConnString = errors.New("failed to parse store connection string")

	// ErrNoConnInContext is returned when a bound store handle is required
	// but absent from the request context.
	ErrNoConnInContext = errors.New("no store connection in context")
)
