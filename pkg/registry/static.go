package registry

import (
	"context"
	"fmt"

	"github.com/templekit/templekit/pkg/temple"
)

// StaticRegistry is an immutable in-memory registry keyed by normalized
// temple id and code. Lookups are lock-free; the maps are never mutated
// after construction.
type StaticRegistry struct {
	byIdentifier map[string]*temple.Temple
}

// NewStatic builds a registry from a fixed set of descriptors.
// Each id and code must be unique after normalization.
func NewStatic(temples []temple.Temple) (*StaticRegistry, error) {
	byIdentifier := make(map[string]*temple.Temple, len(temples)*2)

	for i := range temples {
		t := temples[i]
		if err := validateStatus(t.Status); err != nil {
			return nil, fmt.Errorf("temple %q: %w", t.ID, err)
		}

		id := temple.NormalizeID(t.ID)
		if id == "" {
			return nil, ErrMissingIdentifier
		}
		if _, exists := byIdentifier[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateIdentifier, id)
		}
		byIdentifier[id] = &t

		if code := temple.NormalizeID(t.Code); code != "" && code != id {
			if _, exists := byIdentifier[code]; exists {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateIdentifier, code)
			}
			byIdentifier[code] = &t
		}
	}

	return &StaticRegistry{byIdentifier: byIdentifier}, nil
}

// Lookup resolves a normalized identifier to a temple descriptor.
func (r *StaticRegistry) Lookup(ctx context.Context, identifier string) (*temple.Temple, error) {
	t, ok := r.byIdentifier[temple.NormalizeID(identifier)]
	if !ok {
		return nil, temple.ErrTempleNotFound
	}
	return t, nil
}

func validateStatus(s temple.Status) error {
	switch s {
	case temple.StatusActive, temple.StatusSuspended, temple.StatusInactive:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}
