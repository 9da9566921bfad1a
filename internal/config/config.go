package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultSessionTTL = 7 * 24 * time.Hour
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port            int      `yaml:"port"`
	DSN             string   `yaml:"dsn"` // MySQL DSN, required
	Env             string   `yaml:"env"` // "development" | "production"
	JWTSecret       string   `yaml:"jwt_secret"`
	SessionTTLHours int      `yaml:"session_ttl_hours"`
	RedisURL        string   `yaml:"redis_url"` // optional: enables rate limit + idempotence
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*AppConfig, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		p = DefaultConfigPath
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", p, err)
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", p, err)
	}
	return cfg, cfg.normalize()
}

func (c *AppConfig) normalize() error {
	if strings.TrimSpace(c.DSN) == "" {
		return errors.New("config: dsn is required")
	}
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if c.SessionTTLHours < 0 {
		return errors.New("config: session_ttl_hours must not be negative")
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// SessionTTL returns the configured session lifetime.
func (c *AppConfig) SessionTTL() time.Duration {
	if c.SessionTTLHours == 0 {
		return defaultSessionTTL
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}
