package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsApplyWithoutAnyOverride(t *testing.T) {
	cfg, err := New("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.GetBool("debug"))
	assert.Equal(t, "info", cfg.GetString("log-level"))
	assert.Equal(t, "maximalis_sorted", cfg.GetString("routing-strategy"))
	assert.Equal(t, 8, cfg.GetInt("arch"))
	assert.Equal(t, int64(0), cfg.GetInt64("seed"))
	assert.Equal(t, 6.0, cfg.GetFloat64("hardware.rb"))
}

func TestNew_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("NACOMPILE_ROUTING_STRATEGY", "mis")
	t.Setenv("NACOMPILE_HARDWARE_RB", "9.5")

	cfg, err := New("", nil)
	require.NoError(t, err)

	assert.Equal(t, "mis", cfg.GetString("routing-strategy"))
	assert.Equal(t, 9.5, cfg.GetFloat64("hardware.rb"))
}

func TestNew_MissingConfigFileIsNotAnError(t *testing.T) {
	_, err := New("/no/such/path/nacompile.yaml", nil)
	assert.NoError(t, err)
}

func TestNew_ReadsConfigFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "nacompile-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("routing-strategy: maximalis\narch: 32\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := New(f.Name(), nil)
	require.NoError(t, err)

	assert.Equal(t, "maximalis", cfg.GetString("routing-strategy"))
	assert.Equal(t, 32, cfg.GetInt("arch"))
}
