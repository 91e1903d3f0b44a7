package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	if cfg.HTTP.Addr != want.HTTP.Addr {
		t.Fatalf("unexpected addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTAccessTTL != want.Auth.JWTAccessTTL {
		t.Fatalf("unexpected access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Limits.SwipesPerMinute != want.Limits.SwipesPerMinute {
		t.Fatalf("unexpected swipe limit: %d", cfg.Limits.SwipesPerMinute)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`env: prod
http:
  addr: ":9090"
  read_timeout: 2s
auth:
  jwt_secret: yaml-secret
  refresh_ttl: 48h
limits:
  swipes_per_minute: 30
  swipes_per_10sec: 5
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected addr: %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("unexpected read timeout: %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Auth.JWTSecret != "yaml-secret" {
		t.Fatalf("unexpected secret: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.RefreshTTL != 48*time.Hour {
		t.Fatalf("unexpected refresh ttl: %s", cfg.Auth.RefreshTTL)
	}
	if cfg.Limits.SwipesPerMinute != 30 || cfg.Limits.SwipesPer10Seconds != 5 {
		t.Fatalf("unexpected swipe limits: %+v", cfg.Limits)
	}

	// Unset sections keep their defaults.
	if cfg.Redis.Addr != Default().Redis.Addr {
		t.Fatalf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("env: prod\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("APP_ENV", "staging")
	t.Setenv("POSTGRES_DSN", "postgres://env:env@db:5432/app")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("SWIPES_PER_MINUTE", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "staging" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.Postgres.DSN != "postgres://env:env@db:5432/app" {
		t.Fatalf("unexpected dsn: %q", cfg.Postgres.DSN)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("unexpected secret: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.JWTAccessTTL != 5*time.Minute {
		t.Fatalf("unexpected access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Limits.SwipesPerMinute != 10 {
		t.Fatalf("unexpected swipe limit: %d", cfg.Limits.SwipesPerMinute)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for malformed duration")
	}
}
