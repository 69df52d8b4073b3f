// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Two schemas live here: [Config] for the mock API server (cmd/api) and
[ClientConfig] for the state client (cmd/socialctl).
*/
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/yomira-social/pkg/query"
)

// # Storage Drivers

const (
	// DriverMemory keeps everything inside the in-process mock data store.
	DriverMemory = "memory"

	// DriverPostgres persists domain rows in PostgreSQL.
	DriverPostgres = "postgres"

	// DriverRedis keeps refresh sessions in Redis.
	DriverRedis = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yomira Social mock API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the domain storage: "memory" or "postgres".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	// MockLatency is the simulated network delay applied by the in-memory store.
	MockLatency time.Duration `env:"MOCK_LATENCY" envDefault:"300ms"`

	// SeedPath optionally overrides the embedded seed fixture.
	SeedPath string `env:"SEED_PATH"`

	// Relational Database (PostgreSQL), only read when StoreDriver is "postgres"
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SessionDriver selects where refresh sessions live: "memory" or "redis".
	SessionDriver string `env:"SESSION_DRIVER" envDefault:"memory"`

	// Key-Value Cache (Redis), only read when SessionDriver is "redis"
	RedisURL string `env:"REDIS_URL"`

	// Cryptographic keys for access token signing. An ephemeral key pair is
	// generated when both paths are empty.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`

	// Token lifetimes
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// ClientConfig holds the settings of the state client and its request gateway.
type ClientConfig struct {

	// APIURL is the fixed base URL every gateway request is resolved against.
	APIURL string `env:"SOCIAL_API_URL" envDefault:"http://localhost:8080/api/v1"`

	// APITimeout bounds a single HTTP exchange.
	APITimeout time.Duration `env:"SOCIAL_API_TIMEOUT" envDefault:"10s"`

	// StateFile is the JSON file backing persisted client state.
	StateFile string `env:"SOCIAL_STATE_FILE" envDefault:".socialctl.json"`

	// StateRedisURL switches persisted state to Redis when set.
	StateRedisURL string `env:"SOCIAL_STATE_REDIS_URL"`

	// StateNamespace separates clients sharing one Redis database.
	StateNamespace string `env:"SOCIAL_STATE_NAMESPACE" envDefault:"default"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadClient parses environment variables into a [ClientConfig] struct.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse client environment variables: %w", err)
	}
	return cfg, nil
}

// validate checks cross-field requirements that struct tags cannot express.
func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.SessionDriver {
	case DriverMemory:
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when SESSION_DRIVER=%s", DriverRedis)
		}
	default:
		return fmt.Errorf("config: unsupported SESSION_DRIVER %q", c.SessionDriver)
	}

	if (c.JWTPrivKeyPath == "") != (c.JWTPubKeyPath == "") {
		return fmt.Errorf("config: JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH must be set together")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowsOrigin reports whether origin is listed in EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	return slices.Contains(query.StringSlice(c.ExtraOrigins), origin)
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
