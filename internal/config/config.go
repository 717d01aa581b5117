// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is used when JWT_SECRET is unset. It is only fit for local use.
const DevJWTSecret = "splitsmart-dev-secret-change-me"

// Config holds every setting the server and CLI read at startup.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
	LogFormat   string
	RequireAuth bool
}

// UsingDevSecret reports whether JWTSecret fell back to the built-in value.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads a .env file if present and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load(files...)
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for unset keys.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBPath:    get("DB_PATH", "./data/splitsmart.db"),
		JWTSecret: get("JWT_SECRET", DevJWTSecret),
		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(get("PORT", "8080")); err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT: %d out of range", cfg.Port)
	}
	if cfg.TokenTTL, err = time.ParseDuration(get("TOKEN_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.RequireAuth, err = strconv.ParseBool(get("REQUIRE_AUTH", "true")); err != nil {
		return Config{}, fmt.Errorf("invalid REQUIRE_AUTH: %w", err)
	}

	return cfg, nil
}
