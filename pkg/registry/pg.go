package registry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templekit/templekit/pkg/temple"
)

// PGRegistry reads temple descriptors from a control-plane Postgres
// database. The table is externally owned and maintained; this registry
// only ever reads it.
type PGRegistry struct {
	pool *pgxpool.Pool
}

// NewPG creates a Postgres-backed registry over the given pool.
func NewPG(pool *pgxpool.Pool) *PGRegistry {
	return &PGRegistry{pool: pool}
}

const lookupQuery = `
	SELECT id, code, connection_alias, status
	FROM temples
	WHERE lower(id) = $1 OR lower(code) = $1
	LIMIT 1`

// Lookup resolves a normalized identifier to a temple descriptor.
// Unknown identifiers yield temple.ErrTempleNotFound; backend failures are
// wrapped in ErrLookupFailed and must be treated as a hard stop by callers.
func (r *PGRegistry) Lookup(ctx context.Context, identifier string) (*temple.Temple, error) {
	norm := temple.NormalizeID(identifier)
	if norm == "" {
		return nil, temple.ErrTempleNotFound
	}

	var t temple.Temple
	err := r.pool.QueryRow(ctx, lookupQuery, norm).
		Scan(&t.ID, &t.Code, &t.ConnectionAlias, &t.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, temple.ErrTempleNotFound
		}
		return nil, errors.Join(ErrLookupFailed, err)
	}

	if err := validateStatus(t.Status); err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}

	return &t, nil
}
