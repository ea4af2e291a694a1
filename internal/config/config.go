package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL           string `yaml:"base_url"`
		RequestTimeoutSec int    `yaml:"request_timeout_sec"`
	} `yaml:"backend"`
	Watch struct {
		PollIntervalSec int `yaml:"poll_interval_sec"`
		WindowSize      int `yaml:"window_size"`
	} `yaml:"watch"`
	Suggest struct {
		CacheTTLSec   int `yaml:"cache_ttl_sec"`
		MinIntervalMs int `yaml:"min_interval_ms"`
		MaxEntries    int `yaml:"max_entries"`
	} `yaml:"suggest"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKAI_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x > 0 {
			cfg.Backend.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("POLL_INTERVAL_SEC"); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x > 0 {
			cfg.Watch.PollIntervalSec = x
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Backend.RequestTimeoutSec == 0 {
		cfg.Backend.RequestTimeoutSec = 10
	}
	if cfg.Watch.PollIntervalSec == 0 {
		cfg.Watch.PollIntervalSec = 5
	}
	if cfg.Watch.WindowSize == 0 {
		cfg.Watch.WindowSize = 20
	}
	if cfg.Suggest.CacheTTLSec == 0 {
		cfg.Suggest.CacheTTLSec = 30
	}
	if cfg.Suggest.MinIntervalMs == 0 {
		cfg.Suggest.MinIntervalMs = 200
	}
	if cfg.Suggest.MaxEntries == 0 {
		cfg.Suggest.MaxEntries = 100
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Watch.PollIntervalSec < 1 {
		return fmt.Errorf("watch.poll_interval_sec must be at least 1")
	}
	if c.Watch.WindowSize < 1 {
		return fmt.Errorf("watch.window_size must be at least 1")
	}
	return nil
}
