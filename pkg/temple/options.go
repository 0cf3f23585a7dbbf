package temple

import (
	"log/slog"
	"net/http"

	"github.com/templekit/templekit/pkg/authn"
)

// Recorder receives pipeline events for instrumentation.
type Recorder interface {
	// Decision records the authoritative access decision for a request.
	Decision(d AccessDecision)

	// BindFailure records a failed store binding for the given alias.
	BindFailure(alias string)
}

// noOpRecorder is used when no recorder is configured.
type noOpRecorder struct{}

func (noOpRecorder) Decision(d AccessDecision) {}

func (noOpRecorder) BindFailure(alias string) {}

// HintFunc extracts an unverified routing hint from a request. It is
// consulted only when no explicit requested temple source is present.
type HintFunc func(r *http.Request) (string, bool)

// config holds middleware configuration.
type config struct {
	resolver  Resolver
	hint      HintFunc
	decrypter Decrypter
	skipPaths []string
	log       *slog.Logger
	recorder  Recorder
}

// Option configures the middleware.
type Option func(*config)

// WithResolver sets a custom requested-temple resolver chain.
func WithResolver(r Resolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithTempleHint sets a custom unverified routing hint source.
func WithTempleHint(h HintFunc) Option {
	return func(c *config) {
		c.hint = h
	}
}

// WithRouteDecrypter lets the routing middleware deobfuscate opaque
// requested-temple tokens before the registry lookup. Configure it together
// with the validator's WithDecrypter so both phases agree on the cipher.
func WithRouteDecrypter(d Decrypter) Option {
	return func(c *config) {
		c.decrypter = d
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRecorder sets a pipeline instrumentation recorder.
func WithRecorder(rec Recorder) Option {
	return func(c *config) {
		if rec != nil {
			c.recorder = rec
		}
	}
}

func defaultConfig() *config {
	cfg := &config{
		resolver: DefaultChain(),
		log:      slog.Default(),
		recorder: noOpRecorder{},
	}
	cfg.hint = func(r *http.Request) (string, bool) {
		token, err := authn.BearerToken(r)
		if err != nil {
			return "", false
		}
		hint, ok := authn.PeekTempleHint(token, cfg.log)
		if !ok {
			return "", false
		}
		return hint.Identifier(), true
	}
	return cfg
}
