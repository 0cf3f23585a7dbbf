package temple

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Default sources for the requested temple, in strict precedence order.
const (
	// HeaderTempleID is the primary explicit tenant designation.
	HeaderTempleID = "X-Temple-ID"

	// ParamTempleID is the body field, route parameter and query parameter
	// name used as fallback designations.
	ParamTempleID = "temple_id"

	// maxBodyPeek bounds how much of the request body the body resolver
	// reads while looking for the temple field.
	maxBodyPeek = 1 << 20
)

// Resolver extracts the requested temple identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the temple identifier from the request.
	// Returns empty string if no identifier is found.
	// Returns error only if the extraction itself fails.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc is an adapter to allow ordinary functions as Resolvers.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// HeaderResolver extracts the temple identifier from an HTTP header.
type HeaderResolver struct {
	// HeaderName is the name of the header to read.
	HeaderName string
}

// NewHeaderResolver creates a header resolver, defaulting to X-Temple-ID.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = HeaderTempleID
	}
	return &HeaderResolver{HeaderName: headerName}
}

// Resolve extracts the temple identifier from the configured header.
func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// BodyResolver extracts the temple identifier from a JSON request body field.
// The consumed body is restored so downstream handlers can re-read it.
type BodyResolver struct {
	// FieldName is the JSON field to read.
	FieldName string
}

// NewBodyResolver creates a body resolver, defaulting to the temple_id field.
func NewBodyResolver(fieldName string) *BodyResolver {
	if fieldName == "" {
		fieldName = ParamTempleID
	}
	return &BodyResolver{FieldName: fieldName}
}

// Resolve reads the temple identifier from the JSON body, if any.
// Non-JSON bodies and undecodable payloads yield an empty identifier rather
// than an error: body parsing problems are the downstream handler's concern.
func (r *BodyResolver) Resolve(req *http.Request) (string, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return "", nil
	}

	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return "", nil
	}

	raw, err := io.ReadAll(io.LimitReader(req.Body, maxBodyPeek))
	if err != nil {
		return "", errors.Join(errors.New("body resolver: read failed"), err)
	}
	// Stitch the peeked bytes back onto the unread remainder so downstream
	// handlers see the body intact even when it exceeds the peek window.
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), req.Body))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil
	}

	var value string
	if err := json.Unmarshal(fields[r.FieldName], &value); err != nil {
		return "", nil
	}

	return value, nil
}

// RouteParamResolver extracts the temple identifier from a chi route
// parameter (e.g., /temples/{temple_id}/bookings).
type RouteParamResolver struct {
	// ParamName is the route parameter to read.
	ParamName string
}

// NewRouteParamResolver creates a route parameter resolver, defaulting to
// the temple_id parameter.
func NewRouteParamResolver(paramName string) *RouteParamResolver {
	if paramName == "" {
		paramName = ParamTempleID
	}
	return &RouteParamResolver{ParamName: paramName}
}

// Resolve extracts the temple identifier from the route parameter.
func (r *RouteParamResolver) Resolve(req *http.Request) (string, error) {
	return chi.URLParam(req, r.ParamName), nil
}

// QueryResolver extracts the temple identifier from a URL query parameter.
type QueryResolver struct {
	// ParamName is the query parameter to read.
	ParamName string
}

// NewQueryResolver creates a query resolver, defaulting to temple_id.
func NewQueryResolver(paramName string) *QueryResolver {
	if paramName == "" {
		paramName = ParamTempleID
	}
	return &QueryResolver{ParamName: paramName}
}

// Resolve extracts the temple identifier from the query string.
func (r *QueryResolver) Resolve(req *http.Request) (string, error) {
	return req.URL.Query().Get(r.ParamName), nil
}

// ChainResolver tries resolvers in order; the first present source wins.
// Exactly one winner: later sources are not consulted once a source yields
// a non-empty value.
type ChainResolver struct {
	Resolvers []Resolver
}

// NewChainResolver creates a resolver chain with strict precedence.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{Resolvers: resolvers}
}

// Resolve tries each resolver in order, returning the first non-empty result.
func (c *ChainResolver) Resolve(r *http.Request) (string, error) {
	var errs []error

	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	return "", nil
}

// DefaultChain returns the standard requested-temple resolution chain:
// explicit header, then body field, then route parameter, then query
// parameter, in that descending precedence.
func DefaultChain() *ChainResolver {
	return NewChainResolver(
		NewHeaderResolver(HeaderTempleID),
		NewBodyResolver(ParamTempleID),
		NewRouteParamResolver(ParamTempleID),
		NewQueryResolver(ParamTempleID),
	)
}
