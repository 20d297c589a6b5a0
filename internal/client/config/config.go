// Package config holds the taskkeeper CLI settings: defaults, an optional
// JSON file (-c/-config) and command-line flags, applied in that order.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: base URL of the taskkeeper HTTP API.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
}

func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server url is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	return nil
}

// LoadConfig applies defaults, then the JSON file, then flags. args is the
// command line without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
