// Package httperr defines the HTTP decision codes emitted by the tenant
// resolution pipeline: a status code plus a stable machine-readable tag.
//
// Error values are plain value types so they can be compared and extended
// with diagnostic detail without mutating the package-level sentinels:
//
//	httperr.Write(w, httperr.ErrTempleForbidden.
//		With("requested_temple", requested).
//		With("claim_temple", claimed))
package httperr
