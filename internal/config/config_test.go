// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validBase() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = strings.Repeat("s", 32)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"missing store path", func(c *Config) { c.Store.Path = "" }, true},
		{"in-memory without path ok", func(c *Config) { c.Store.Path = ""; c.Store.InMemory = true }, false},
		{"zero cooldown", func(c *Config) { c.Social.Cooldown = 0 }, true},
		{"zero sweep interval", func(c *Config) { c.Social.SweepInterval = 0 }, true},
		{"max page below default", func(c *Config) { c.API.MaxPageSize = 1 }, true},
		{"media enabled without timeout", func(c *Config) { c.Media.BaseURL = "https://x"; c.Media.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8640}
	if got := s.Addr(); got != "127.0.0.1:8640" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8640", got)
	}
}

func TestMediaEnabled(t *testing.T) {
	if (MediaConfig{}).Enabled() {
		t.Error("Enabled() = true for empty base URL")
	}
	if !(MediaConfig{BaseURL: "https://meta.example.com"}).Enabled() {
		t.Error("Enabled() = false with base URL set")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SERVER_PORT", "server.port"},
		{"SOCIAL_SWEEP_INTERVAL", "social.sweep_interval"},
		{"SOCIAL_COOLDOWN", "social.cooldown"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"LOG_LEVEL", "logging.level"},
		{"STORE_PATH", "store.path"},
		{"MEDIA_BASE_URL", "media.base_url"},
		{"PATH", "ignored.path"},
		{"HOME", "ignored.home"},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadLayersDefaultsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
social:
  cooldown: 30m
store:
  in_memory: true
  path: ""
`
	if err := os.WriteFile(configPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	// Env beats the file.
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.Social.Cooldown != 30*time.Minute {
		t.Errorf("Cooldown = %v, want file value 30m", cfg.Social.Cooldown)
	}
	if cfg.Social.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval = %v, want default 5m", cfg.Social.SweepInterval)
	}
	if !cfg.Store.InMemory {
		t.Error("InMemory = false, want file value true")
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_IN_MEMORY", "true")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want validation failure for missing JWT secret")
	}
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("STORE_IN_MEMORY", "true")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}
