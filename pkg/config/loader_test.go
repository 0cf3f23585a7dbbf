package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templekit/templekit/pkg/config"
)

type probeConfig struct {
	Timeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"3s"`
	Alias   string        `env:"PROBE_ALIAS" envDefault:"shard-a"`
}

type requiredConfig struct {
	Key string `env:"LOADER_TEST_REQUIRED_KEY,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg probeConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t, "shard-a", cfg.Alias)
	})

	t.Run("second load returns the cached value", func(t *testing.T) {
		var first probeConfig
		require.NoError(t, config.Load(&first))

		// Changing the environment after the first parse has no effect:
		// each type is parsed at most once per process.
		t.Setenv("PROBE_ALIAS", "shard-z")

		var second probeConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.Alias, second.Alias)
	})

	t.Run("nil target", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[probeConfig](nil), config.ErrNilPointer)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("succeeds with defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			var cfg probeConfig
			config.MustLoad(&cfg)
		})
	})
}
