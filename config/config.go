// Package config loads the settings of the pagesim tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables that override
// settings. For example, PAGESIM_SERVER_ADDRESS sets server.address.
const EnvPrefix = "PAGESIM"

// Config holds all the settings.
type Config struct {
	Server struct {
		Address            string   `mapstructure:"address"`
		AllowedOrigins     []string `mapstructure:"allowed_origins"`
		MaxReferenceLength int      `mapstructure:"max_reference_length"`
	} `mapstructure:"server"`

	Recording struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"recording"`

	Log struct {
		Verbose bool `mapstructure:"verbose"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_reference_length", 100000)
	v.SetDefault("recording.enabled", false)
	v.SetDefault("recording.path", "")
	v.SetDefault("log.verbose", false)
}

// Load reads the settings. Defaults are overridden by the YAML file at path,
// then by the variables in envFile, then by the environment. Empty paths are
// skipped. A missing envFile is not an error.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the settings make sense.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address must not be empty")
	}

	if c.Server.MaxReferenceLength < 0 {
		return fmt.Errorf("server.max_reference_length must not be negative, "+
			"got %d", c.Server.MaxReferenceLength)
	}

	return nil
}
