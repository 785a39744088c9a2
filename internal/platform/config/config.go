// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

/*
Package config loads the server settings once at startup.

Order: 'joho/godotenv' reads the optional file named by ENV_FILE (default
.env) without overriding variables already set, 'caarlos0/env' maps the
environment onto [Config], and 'go-playground/validator' rejects
combinations that cannot work (postgres without a DSN, RS256 without keys).

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Books API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"        validate:"required,numeric"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development" validate:"oneof=development staging production test"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the repository implementation.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres" validate:"oneof=postgres memory"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE"   envDefault:"true"`

	// Key-Value store (Redis). Optional: enables the shared rate limiter.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTAlgorithm   string        `env:"JWT_ALGORITHM"        envDefault:"HS256" validate:"oneof=HS256 HS384 HS512 RS256"`
	JWTSecret      string        `env:"JWT_SECRET"           validate:"required_unless=JWTAlgorithm RS256"`
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH" validate:"required_if=JWTAlgorithm RS256"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH"  validate:"required_if=JWTAlgorithm RS256"`
	TokenTTL       time.Duration `env:"TOKEN_TTL"            envDefault:"1h"    validate:"gt=0"`

	// Rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100" validate:"gt=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150" validate:"gt=0"`

	// TrustProxyHeaders keys rate limiting on X-Real-IP / X-Forwarded-For.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file (ENV_FILE, default ".env"), parses
// environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// A missing dotenv file is fine; a malformed one is not.
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules (driver vs DSN, algorithm vs key material).
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			names := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				names = append(names, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid settings: %s", strings.Join(names, ", "))
		}
		return fmt.Errorf("config: invalid settings: %w", err)
	}
	return nil
}

func loadDotEnv() error {
	path := ".env"
	if p := os.Getenv("ENV_FILE"); p != "" {
		path = p
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesMemoryStore reports whether repositories are backed by the in-memory store.
func (c *Config) UsesMemoryStore() bool {
	return c.StoreDriver == StoreDriverMemory
}
