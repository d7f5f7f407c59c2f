// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Valkey (Redis-compatible draft store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// DraftTTL is how long an untouched draft is kept.
	DraftTTL time.Duration

	// Per-IP rate limit for the API: RateLimit requests per RateWindow.
	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Variables from a .env file (or the
// file named by ENV_FILE) are loaded first without overriding the real
// environment. Returns an error if a value is malformed or if critical
// values are missing in production mode.
func Load() (*Config, error) {
	envFile := envOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		slog.Debug("no env file, using process environment", "file", envFile)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.ValkeyDB, err = intEnv("VALKEY_DB", 0); err != nil {
		return nil, err
	}
	if cfg.DraftTTL, err = durationEnv("DRAFT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = intEnv("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = durationEnv("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if cfg.ValkeyDB < 0 || cfg.ValkeyDB > 15 {
		return nil, fmt.Errorf("VALKEY_DB must be between 0 and 15, got %d", cfg.ValkeyDB)
	}
	if cfg.DraftTTL <= 0 {
		return nil, fmt.Errorf("DRAFT_TTL must be positive")
	}
	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT and RATE_WINDOW must be positive")
	}

	if cfg.Env == "production" && cfg.ValkeyPassword == "" {
		return nil, fmt.Errorf("VALKEY_PASSWORD must be set in production")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intEnv reads an integer environment variable.
func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// durationEnv reads a duration environment variable such as "30m".
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
