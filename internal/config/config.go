// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package config holds application configuration loaded via Koanf v2 with
// layered sources (highest priority wins): environment variables, optional
// YAML config file, built-in defaults.
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Security SecurityConfig `koanf:"security"`
	Social   SocialConfig   `koanf:"social"`
	Media    MediaConfig    `koanf:"media"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig holds the BadgerDB document store settings.
type StoreConfig struct {
	// Path is the on-disk directory for the store.
	Path string `koanf:"path"`
	// InMemory runs the store without persistence; used by tests and
	// throwaway development instances.
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig holds authentication and HTTP hardening settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens; minimum 32 characters.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// LoginRateLimitReqs caps login/claim attempts per window per IP.
	LoginRateLimitReqs   int           `koanf:"login_rate_limit_reqs"`
	LoginRateLimitWindow time.Duration `koanf:"login_rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// SocialConfig holds the follow-request lifecycle parameters.
type SocialConfig struct {
	// Cooldown is how long a rejected follow request blocks a re-request.
	Cooldown time.Duration `koanf:"cooldown"`
	// SweepInterval is how often the expiry sweeper scans for stale
	// rejected requests.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// MediaConfig holds the external media metadata provider settings.
// The media client is enabled when BaseURL is non-empty.
type MediaConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// Outbound request throttling toward the provider.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`

	// Circuit breaker parameters.
	BreakerMaxRequests      uint32        `koanf:"breaker_max_requests"`
	BreakerInterval         time.Duration `koanf:"breaker_interval"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
}

// Enabled reports whether a metadata provider is configured.
func (m MediaConfig) Enabled() bool {
	return m.BaseURL != ""
}

// APIConfig holds pagination limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters (got %d)", len(c.Security.JWTSecret))
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store path is required unless in-memory mode is enabled")
	}
	if c.Social.Cooldown <= 0 {
		return fmt.Errorf("social cooldown must be positive (got %s)", c.Social.Cooldown)
	}
	if c.Social.SweepInterval <= 0 {
		return fmt.Errorf("social sweep interval must be positive (got %s)", c.Social.SweepInterval)
	}
	if c.API.DefaultPageSize < 1 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("invalid pagination limits (default %d, max %d)", c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	if c.Media.Enabled() && c.Media.Timeout <= 0 {
		return fmt.Errorf("media timeout must be positive when a provider is configured")
	}
	return nil
}
