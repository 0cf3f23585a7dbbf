package temple

import (
	"context"
	"strings"
)

// Status represents the lifecycle state of a temple.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

// Temple describes one tenant: a customer account with its own isolated
// data store. A descriptor is immutable once loaded for a request; it is
// never mutated in place, only replaced wholesale on registry reload.
type Temple struct {
	// ID is the stable tenant identifier.
	ID string `json:"id" yaml:"id"`

	// Code is a human-readable alias (e.g., a slug used in URLs).
	Code string `json:"code" yaml:"code"`

	// ConnectionAlias is the opaque handle identifying which backing store
	// serves this temple's data.
	ConnectionAlias string `json:"connection_alias" yaml:"connection_alias"`

	// Status is the temple lifecycle state.
	Status Status `json:"status" yaml:"status"`
}

// IsActive reports whether the temple may be served.
func (t *Temple) IsActive() bool {
	return t != nil && t.Status == StatusActive
}

// Matches reports whether the normalized identifier equals the temple's
// id or code.
func (t *Temple) Matches(identifier string) bool {
	if t == nil || identifier == "" {
		return false
	}
	norm := NormalizeID(identifier)
	return norm == NormalizeID(t.ID) || norm == NormalizeID(t.Code)
}

// Registry maps a tenant identifier (id or code) to its descriptor.
// The registry is externally owned; this module only reads it.
type Registry interface {
	// Lookup resolves a normalized identifier to a temple descriptor.
	// Returns ErrTempleNotFound for unknown identifiers. Lookup failure is
	// a hard stop: implementations never fall back to a default temple.
	Lookup(ctx context.Context, identifier string) (*Temple, error)
}

// RegistryFunc is an adapter to allow ordinary functions as Registries.
type RegistryFunc func(ctx context.Context, identifier string) (*Temple, error)

// Lookup calls the function.
func (f RegistryFunc) Lookup(ctx context.Context, identifier string) (*Temple, error) {
	return f(ctx, identifier)
}

// NormalizeID canonicalizes a tenant identifier for lookup and comparison:
// lowercased and trimmed of surrounding whitespace.
func NormalizeID(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
