// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelgraph/config.yaml",
	"/etc/reelgraph/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8640,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Store: StoreConfig{
			Path:     "/data/reelgraph",
			InMemory: false,
		},
		Security: SecurityConfig{
			JWTSecret:            "",
			SessionTimeout:       24 * time.Hour,
			RateLimitReqs:        100,
			RateLimitWindow:      time.Minute,
			RateLimitDisabled:    false,
			LoginRateLimitReqs:   5,
			LoginRateLimitWindow: 5 * time.Minute,
			CORSOrigins:          []string{},
		},
		Social: SocialConfig{
			Cooldown:      15 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Media: MediaConfig{
			BaseURL:                 "",
			APIKey:                  "",
			Timeout:                 10 * time.Second,
			RatePerSecond:           4,
			RateBurst:               8,
			BreakerMaxRequests:      3,
			BreakerInterval:         time.Minute,
			BreakerTimeout:          30 * time.Second,
			BreakerFailureThreshold: 5,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: highest priority
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// SERVER_PORT -> server.port, SOCIAL_SWEEP_INTERVAL -> social.sweep_interval
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated
// slices when set from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars arrive as strings but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw := k.Get(path)
		s, ok := raw.(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings routes environment variable names that do not follow the plain
// SECTION_KEY convention to their koanf paths.
var envMappings = map[string]string{
	"jwt_secret":              "security.jwt_secret",
	"session_timeout":         "security.session_timeout",
	"rate_limit_reqs":         "security.rate_limit_reqs",
	"rate_limit_window":       "security.rate_limit_window",
	"rate_limit_disabled":     "security.rate_limit_disabled",
	"login_rate_limit_reqs":   "security.login_rate_limit_reqs",
	"login_rate_limit_window": "security.login_rate_limit_window",
	"cors_origins":            "security.cors_origins",
	"log_level":               "logging.level",
	"log_format":              "logging.format",
	"log_caller":              "logging.caller",
	"http_port":               "server.port",
	"http_host":               "server.host",
	"environment":             "server.environment",
	"store_path":              "store.path",
	"store_in_memory":         "store.in_memory",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - SERVER_PORT -> server.port
//   - SOCIAL_SWEEP_INTERVAL -> social.sweep_interval
//   - JWT_SECRET -> security.jwt_secret (via envMappings)
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// SECTION_SOME_KEY -> section.some_key for known sections.
	for _, section := range []string{"server", "store", "security", "social", "media", "api", "logging"} {
		prefix := section + "_"
		if strings.HasPrefix(key, prefix) {
			return section + "." + strings.TrimPrefix(key, prefix)
		}
	}

	// Unknown variables are ignored by pointing them at an unused branch.
	return "ignored." + key
}
