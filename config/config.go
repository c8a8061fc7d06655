// Package config loads node settings from a YAML file, an optional .env file
// and the process environment, in that order of precedence (lowest first).
package config

import (
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gopallet/runtime"
)

// HTTPConfig controls the API listener.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"GOPALLET_HTTP_ADDR"`

	// Requests per second accepted on block submission. Zero disables the limit.
	BlockRate  float64 `yaml:"block_rate" env:"GOPALLET_HTTP_BLOCK_RATE"`
	BlockBurst int     `yaml:"block_burst" env:"GOPALLET_HTTP_BLOCK_BURST"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"GOPALLET_LOG_LEVEL"`
	Format string `yaml:"format" env:"GOPALLET_LOG_FORMAT"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"GOPALLET_METRICS_ENABLED"`
	Path      string `yaml:"path" env:"GOPALLET_METRICS_PATH"`
	Namespace string `yaml:"namespace" env:"GOPALLET_METRICS_NAMESPACE"`
}

// Config is the full node configuration.
type Config struct {
	HTTP    HTTPConfig                            `yaml:"http"`
	Log     LogConfig                             `yaml:"log"`
	Metrics MetricsConfig                         `yaml:"metrics"`
	Genesis map[runtime.AccountID]runtime.Balance `yaml:"genesis"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:       ":8080",
			BlockRate:  10,
			BlockBurst: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "gopallet",
		},
		Genesis: map[runtime.AccountID]runtime.Balance{},
	}
}

// Load builds a configuration starting from the defaults. An empty path skips
// the YAML file. A .env file in the working directory is loaded if present;
// variables already set in the environment win over it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config")
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	if err := envdecode.Decode(cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, errors.Wrap(err, "failed to decode environment")
	}

	if cfg.Genesis == nil {
		cfg.Genesis = map[runtime.AccountID]runtime.Balance{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the node cannot start with.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.BlockRate < 0 {
		return errors.Errorf("http.block_rate must not be negative, got %v", c.HTTP.BlockRate)
	}
	if c.HTTP.BlockRate > 0 && c.HTTP.BlockBurst < 1 {
		return errors.Errorf("http.block_burst must be at least 1 when rate limiting, got %d", c.HTTP.BlockBurst)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	for who := range c.Genesis {
		if who == "" {
			return errors.New("genesis contains an empty account id")
		}
	}
	return nil
}
