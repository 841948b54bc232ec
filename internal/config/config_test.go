package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.OTP.TTL != 10*time.Minute {
		t.Errorf("default otp ttl = %v, want 10m", cfg.OTP.TTL)
	}
	if cfg.OTP.MaxAttempts != 5 {
		t.Errorf("default otp attempts = %d, want 5", cfg.OTP.MaxAttempts)
	}
	if cfg.Matching.RecommendLimit != 20 {
		t.Errorf("default recommend limit = %d, want 20", cfg.Matching.RecommendLimit)
	}
	if cfg.Scheduler.JobMaxAge != 90*24*time.Hour {
		t.Errorf("default job max age = %v, want 2160h", cfg.Scheduler.JobMaxAge)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://env-host/talenthub")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("SCHEDULER_ENABLED", "false")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://env-host/talenthub" {
		t.Errorf("database url = %q, want env value", cfg.Database.URL)
	}
	if cfg.OTP.TTL != 5*time.Minute {
		t.Errorf("otp ttl = %v, want 5m", cfg.OTP.TTL)
	}
	if cfg.Scheduler.Enabled {
		t.Error("scheduler should be disabled via env")
	}
}

func TestLoadConfigExpandsEnvVarsInYAML(t *testing.T) {
	t.Setenv("TEST_DB_URL", "postgres://yaml-host/talenthub")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  url: \"${TEST_DB_URL}\"\n  max_conns: 3\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Database.URL != "postgres://yaml-host/talenthub" {
		t.Errorf("database url = %q, want expanded env value", cfg.Database.URL)
	}
	if cfg.Database.MaxConns != 3 {
		t.Errorf("max conns = %d, want 3 from yaml", cfg.Database.MaxConns)
	}
}
