package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path == "" {
		t.Error("Expected a default database path")
	}
	if cfg.Database.MaxOpenConns <= 0 {
		t.Error("Expected positive default for max open connections")
	}
	if cfg.Database.PingTimeout <= 0 {
		t.Error("Expected positive default ping timeout")
	}
	if cfg.Pricing.File == "" {
		t.Error("Expected a default pricing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/override.db")
	t.Setenv("DB_PING_TIMEOUT", "11s")
	t.Setenv("CREATE_DEMO_PROFILES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Expected overridden path, got %s", cfg.Database.Path)
	}
	if cfg.Database.PingTimeout != 11*time.Second {
		t.Errorf("Expected 11s ping timeout, got %v", cfg.Database.PingTimeout)
	}
	if !cfg.Database.CreateDemoProfiles {
		t.Error("Expected demo profile creation enabled")
	}
}

func TestInvalidDurationRejected(t *testing.T) {
	t.Setenv("DB_PING_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Expected error for malformed duration")
	}
}
