package switchboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Switchboard binds a resolved connection alias to the current request's
// execution scope. Pools are shared per alias and created lazily; the bound
// handle is carried in the request context only, never in process-global
// state, so the binding for one request is invisible to concurrently
// executing requests.
type Switchboard struct {
	cfg  Config
	log  *slog.Logger
	dsns map[string]string

	mu    sync.RWMutex
	pools map[string]*pgxpool.Pool
}

// Option configures a Switchboard.
type Option func(*Switchboard)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Switchboard) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Switchboard over the given alias-to-DSN mapping.
// No connections are opened until an alias is first bound.
func New(cfg Config, dsns map[string]string, opts ...Option) *Switchboard {
	s := &Switchboard{
		cfg:   cfg,
		log:   slog.Default(),
		dsns:  dsns,
		pools: make(map[string]*pgxpool.Pool, len(dsns)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind resolves the alias to a pooled store and attaches a request-scoped
// handle to the returned context. A bounded-time connectivity probe runs on
// every bind; probe timeout or failure yields ErrStoreUnreachable, which is
// distinct from a tenant registry miss.
func (s *Switchboard) Bind(ctx context.Context, connectionAlias string) (context.Context, error) {
	pool, err := s.pool(ctx, connectionAlias)
	if err != nil {
		return ctx, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()

	if err := pool.Ping(probeCtx); err != nil {
		return ctx, errors.Join(ErrStoreUnreachable, err)
	}

	return WithConn(ctx, &Conn{Alias: connectionAlias, Pool: pool}), nil
}

// pool returns the shared pool for an alias, creating it on first use.
func (s *Switchboard) pool(ctx context.Context, alias string) (*pgxpool.Pool, error) {
	s.mu.RLock()
	pool, ok := s.pools[alias]
	s.mu.RUnlock()
	if ok {
		return pool, nil
	}

	dsn, ok := s.dsns[alias]
	if !ok {
		return nil, ErrUnknownAlias
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created the pool while we waited.
	if pool, ok := s.pools[alias]; ok {
		return pool, nil
	}

	connConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}
	connConfig.MaxConns = s.cfg.MaxOpenConns
	connConfig.MinConns = s.cfg.MaxIdleConns
	connConfig.MaxConnIdleTime = s.cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = s.cfg.MaxConnLifetime

	pool, err = pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, errors.Join(ErrStoreUnreachable, err)
	}

	s.pools[alias] = pool
	s.log.InfoContext(ctx, "temple store pool created", slog.String("alias", alias))

	return pool, nil
}

// Healthcheck returns a closure probing the store behind the given alias.
// Compatible with health check registries expecting func(context.Context) error.
func (s *Switchboard) Healthcheck(alias string) func(context.Context) error {
	return func(ctx context.Context) error {
		pool, err := s.pool(ctx, alias)
		if err != nil {
			return err
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrStoreUnreachable, err)
		}
		return nil
	}
}

// Close shuts down all pools. Intended for process shutdown only.
func (s *Switchboard) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for alias, pool := range s.pools {
		pool.Close()
		delete(s.pools, alias)
	}
}
