package registry

import "errors"

var (
	// ErrInvalidStatus is returned when a registry entry carries an
	// unrecognized status value.
	ErrInvalidStatus = errors.New("invalid temple status")

	// ErrDuplicateIdentifier is returned when two registry entries share
	// an id or code. A tenant identifier must resolve to at most one
	// connection descriptor.
	ErrDuplicateIdentifier = errors.New("duplicate temple identifier")

	// ErrMissingIdentifier is returned when a registry entry has no id.
	ErrMissingIdentifier = errors.New("temple entry missing id")

	// ErrLookupFailed is returned when the registry backend fails.
	ErrLookupFailed = errors.New("temple registry lookup failed")
)
