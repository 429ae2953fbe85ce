// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Cache    CacheConfig    `yaml:"cache"`
	Playback PlaybackConfig `yaml:"playback"`
	Players  []PlayerConfig `yaml:"players"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig represents playlist API configuration.
type APIConfig struct {
	BaseURL    string `yaml:"base_url" default:"http://localhost:8000" validate:"required,url"`
	TimeoutSec int    `yaml:"timeout_sec" default:"10" validate:"gte=1,lte=120"`
}

// CacheConfig represents persisted cache configuration.
type CacheConfig struct {
	// Path to the cache document. Empty means in-memory only.
	Path string `yaml:"path"`
}

// PlaybackConfig represents playback policy configuration.
type PlaybackConfig struct {
	// AutoplayOnSet starts playback as soon as a queue is set.
	AutoplayOnSet bool `yaml:"autoplay_on_set"`
}

// PlayerConfig represents a single player adapter configuration.
type PlayerConfig struct {
	Platform string         `yaml:"platform" validate:"required,oneof=youtube spotify soundcloud"`
	Settings map[string]any `yaml:"settings"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Output string `yaml:"output" default:"stdout"`
	Level  string `yaml:"level" default:"info"`
}

// envOverrides holds environment variables that take precedence over
// file values.
type envOverrides struct {
	APIBaseURL string `env:"CROSSQUEUE_API_URL"`
	CachePath  string `env:"CROSSQUEUE_CACHE_PATH"`
	LogLevel   string `env:"CROSSQUEUE_LOG_LEVEL"`
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment variables override
// file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func (c *Config) overrideFromEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return errors.Wrap(err, "failed to parse environment overrides")
	}

	if o.APIBaseURL != "" {
		c.API.BaseURL = o.APIBaseURL
	}
	if o.CachePath != "" {
		c.Cache.Path = o.CachePath
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if seen[p.Platform] {
			return errors.Newf("duplicate player config for platform %s", p.Platform)
		}
		seen[p.Platform] = true
	}
	return nil
}
