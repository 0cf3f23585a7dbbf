package switchboard

import "time"

// Config holds store pool and probe settings shared by all aliases.
type Config struct {
	// ProbeTimeout bounds the connectivity probe performed on bind.
	ProbeTimeout time.Duration `env:"SWITCHBOARD_PROBE_TIMEOUT" envDefault:"3s"`
	// MaxOpenConns is the per-store pool size cap.
	MaxOpenConns int32 `env:"SWITCHBOARD_MAX_OPEN_CONNS" envDefault:"10"`
	// MaxIdleConns is the per-store minimum idle connections.
	MaxIdleConns int32 `env:"SWITCHBOARD_MAX_IDLE_CONNS" envDefault:"2"`
	// MaxConnIdleTime is how long an idle connection may be reused.
	MaxConnIdleTime time.Duration `env:"SWITCHBOARD_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	// MaxConnLifetime is the maximum lifetime of a pooled connection.
	MaxConnLifetime time.Duration `env:"SWITCHBOARD_MAX_CONN_LIFETIME" envDefault:"30m"`
}

// DefaultConfig returns sane defaults matching the env tag defaults.
func DefaultConfig() Config {
	return Config{
		ProbeTimeout:    3 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		MaxConnIdleTime: 10 * time.Minute,
		MaxConnLifetime: 30 * time.Minute,
	}
}
