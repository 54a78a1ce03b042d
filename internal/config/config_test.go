package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadYAMLWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9090"
redis:
  addr: "localhost:6379"
upstream:
  baseURL: "http://localhost:3000"
session:
  idleTimeout: "45m"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("AUTH_REQUIRE_FOR_AUTHORING", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6380" {
		t.Fatalf("expected env override, got %q", cfg.Redis.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if !cfg.Auth.RequireForAuthoring {
		t.Fatalf("expected authoring auth enabled from env")
	}
	if cfg.Upstream.QuestionsPath != "/apis/v2/medical/getmcqs" {
		t.Fatalf("expected default questions path, got %q", cfg.Upstream.QuestionsPath)
	}
	if got := TTLDuration(cfg.Session.IdleTimeout, time.Minute); got != 45*time.Minute {
		t.Fatalf("expected 45m, got %s", got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := TTLDuration("soon", time.Second); got != time.Second {
		t.Fatalf("expected fallback for invalid input, got %s", got)
	}
}
