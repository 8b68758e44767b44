// Package config wraps a layered viper configuration (defaults, config
// file, environment, CLI flags) behind typed accessors, so the rest of
// the codebase never touches viper directly.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is a thin wrapper around *viper.Viper exposing the typed
// accessors this repository needs.
type Config struct {
	v *viper.Viper
}

// New returns a Config with compiled-in defaults set, optionally reading
// a config file at path (ignored if empty or missing) and binding
// NACOMPILE_-prefixed environment variables.
func New(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NACOMPILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log-level", "info")
	v.SetDefault("out-dir", "./results/")
	v.SetDefault("arch", 8)
	v.SetDefault("routing-strategy", "maximalis_sorted")
	v.SetDefault("trivial-layout", false)
	v.SetDefault("r2i", false)
	v.SetDefault("window", false)
	v.SetDefault("full-code", false)
	v.SetDefault("seed", int64(0))
	v.SetDefault("job-queue-size", 16)

	v.SetDefault("hardware.rb", 6.0)
	v.SetDefault("hardware.aod-sep", 2.0)
	v.SetDefault("hardware.ryd-sep", 15.0)
	v.SetDefault("hardware.site-width", 4.0)
	v.SetDefault("hardware.t-rydberg", 0.36)
	v.SetDefault("hardware.t-activate", 15.0)
}

func (c *Config) GetBool(key string) bool       { return c.v.GetBool(key) }
func (c *Config) GetString(key string) string   { return c.v.GetString(key) }
func (c *Config) GetInt(key string) int         { return c.v.GetInt(key) }
func (c *Config) GetInt64(key string) int64     { return c.v.GetInt64(key) }
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }
