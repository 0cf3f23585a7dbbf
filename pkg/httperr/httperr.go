package httperr

import (
	"encoding/json"
	"net/http"
)

// Error represents an HTTP error with status code and machine-readable tag.
// The Tag field is stable across releases and intended for client-side
// branching; Detail carries optional diagnostic key/value pairs.
type Error struct {
	Status int               `json:"-"`
	Tag    string            `json:"error"`
	Detail map[string]string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Tag
}

// New creates an HTTP error with the given status code and machine tag.
func New(status int, tag string) Error {
	return Error{Status: status, Tag: tag}
}

// With returns a copy of the error with an extra diagnostic key/value pair.
// The receiver is not mutated, so package-level error values stay constant.
func (e Error) With(key, value string) Error {
	detail := make(map[string]string, len(e.Detail)+1)
	for k, v := range e.Detail {
		detail[k] = v
	}
	detail[key] = value
	return Error{Status: e.Status, Tag: e.Tag, Detail: detail}
}

// Decision codes surfaced by the tenant pipeline.
var (
	ErrTempleNotSpecified  = Error{Status: http.StatusBadRequest, Tag: "TEMPLE_NOT_SPECIFIED"}
	ErrUnauthenticated     = Error{Status: http.StatusUnauthorized, Tag: "UNAUTHENTICATED"}
	ErrTokenExpired        = Error{Status: http.StatusUnauthorized, Tag: "TOKEN_EXPIRED"}
	ErrTokenInvalid        = Error{Status: http.StatusUnauthorized, Tag: "TOKEN_INVALID"}
	ErrTempleForbidden     = Error{Status: http.StatusForbidden, Tag: "TEMPLE_ACCESS_FORBIDDEN"}
	ErrTempleUnknown       = Error{Status: http.StatusNotFound, Tag: "TEMPLE_ERROR"}
	ErrStoreUnavailable    = Error{Status: http.StatusServiceUnavailable, Tag: "SERVICE_UNAVAILABLE"}
	ErrInternalServerError = Error{Status: http.StatusInternalServerError, Tag: "INTERNAL_ERROR"}
)

// Write renders the error as a JSON response body with the mapped status code.
func Write(w http.ResponseWriter, e Error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}
