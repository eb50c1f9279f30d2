// Package config loads runtime settings for the portfolio binary.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PORTFOLIO_"

type Config struct {
	Port             string        `koanf:"port"`
	GinMode          string        `koanf:"gin_mode"`
	LogLevel         string        `koanf:"log_level"`
	CatalogPath      string        `koanf:"catalog_path"`
	DatabasePath     string        `koanf:"database_path"`
	StaticDir        string        `koanf:"static_dir"`
	ImagesDir        string        `koanf:"images_dir"`
	AdminUsername    string        `koanf:"admin_username"`
	AdminPassword    string        `koanf:"admin_password"`
	CookieSecure     bool          `koanf:"cookie_secure"`
	SessionTTL       time.Duration `koanf:"session_ttl"`
	SweepInterval    time.Duration `koanf:"sweep_interval"`
	VisitorRetention time.Duration `koanf:"visitor_retention"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Port:             "8080",
		GinMode:          "release",
		LogLevel:         "info",
		DatabasePath:     "data/portfolio.db",
		StaticDir:        "./static",
		ImagesDir:        "./images",
		SessionTTL:       30 * time.Minute,
		SweepInterval:    5 * time.Minute,
		VisitorRetention: 365 * 24 * time.Hour,
	}
}

// Load starts from Default, overlays the YAML file at path if it exists,
// then PORTFOLIO_* environment variables. A bare PORT variable (set by most
// hosting platforms) wins over the file when PORTFOLIO_PORT is unset.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv(envPrefix+"PORT") == "" {
		cfg.Port = port
	}

	return cfg, nil
}

var validGinModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid gin_mode %q: must be one of debug, release, test", c.GinMode)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive")
	}
	if c.VisitorRetention <= 0 {
		return fmt.Errorf("visitor_retention must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
