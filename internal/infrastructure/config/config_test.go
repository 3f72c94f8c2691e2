package config_test

import (
	"testing"
	"time"

	"github.com/iho/salesledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SHOP_CONTACT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.BusinessTimezone != "Asia/Kolkata" {
		t.Fatalf("expected Asia/Kolkata business timezone, got %s", cfg.BusinessTimezone)
	}

	if !cfg.RedisEnabled || cfg.ClientCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected redis defaults: enabled=%v ttl=%s", cfg.RedisEnabled, cfg.ClientCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("CALLER_TIMEZONE", "Europe/London")
	t.Setenv("SHOP_NAME", "Test Shop")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" || cfg.RedisEnabled {
		t.Fatalf("expected redis overrides, got url=%s enabled=%v", cfg.RedisURL, cfg.RedisEnabled)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.CallerTimezone != "Europe/London" || cfg.ShopName != "Test Shop" {
		t.Fatalf("expected ledger overrides, got zone=%s shop=%s", cfg.CallerTimezone, cfg.ShopName)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidTimezone(t *testing.T) {
	t.Setenv("BUSINESS_TIMEZONE", "Nowhere/Special")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestLoadInvalidPoolSizes(t *testing.T) {
	t.Setenv("DATABASE_MIN_CONNS", "30")
	t.Setenv("DATABASE_MAX_CONNS", "10")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when min conns exceed max conns")
	}
}

func TestLoadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}
	if cfg.RateLimitRPS != 5.5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit: rps=%v burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	t.Setenv("RATE_LIMIT_RPS", "-1")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for negative rate")
	}
}
