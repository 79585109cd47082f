// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting of the yatube binary.
type Config struct {
	Addr           string        `env:"YATUBE_ADDR" envDefault:":8000"`
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:"yatube.db"`
	SecretKey      string        `env:"SECRET_KEY"`
	MediaRoot      string        `env:"MEDIA_ROOT" envDefault:"media"`
	RedisURL       string        `env:"REDIS_URL"`
	IndexCacheTTL  time.Duration `env:"INDEX_CACHE_TTL" envDefault:"20s"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"336h"`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

// Load reads an optional .env file and then the process environment. Values
// already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv fills target from the environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ValidateServe checks the settings the HTTP server cannot run without.
func (c *Config) ValidateServe() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must be set")
	}
	if c.IndexCacheTTL < 0 {
		return errors.New("INDEX_CACHE_TTL must not be negative")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}
