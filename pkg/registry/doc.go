// Package registry provides temple.Registry implementations over externally
// owned tenant mappings: a fixed in-memory set, a YAML file, and a
// control-plane Postgres table.
//
// All implementations fail closed. An unknown identifier is
// temple.ErrTempleNotFound, never a default descriptor, and backend
// failures surface as errors rather than empty results. Wrap any of them in
// a temple.Directory to add TTL caching with per-key load deduplication.
package registry
