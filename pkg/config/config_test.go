package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Macro.BaseURL != "http://localhost:8001" {
		t.Errorf("Macro.BaseURL = %s, want http://localhost:8001", cfg.Macro.BaseURL)
	}
	if cfg.Macro.Timeout != 30*time.Second {
		t.Errorf("Macro.Timeout = %v, want 30s", cfg.Macro.Timeout)
	}
	if cfg.Macro.FREDAPIKey == "" {
		t.Error("Macro.FREDAPIKey should fall back to the built-in default")
	}
	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir = %s, want output", cfg.OutputDir)
	}
	if cfg.DefaultSymbol != "BTC/USDT" {
		t.Errorf("DefaultSymbol = %s, want BTC/USDT", cfg.DefaultSymbol)
	}
	if cfg.MaxIndicatorAgeDays != 0 {
		t.Errorf("MaxIndicatorAgeDays = %d, want 0 (disabled)", cfg.MaxIndicatorAgeDays)
	}
	if cfg.HistoryEnabled() {
		t.Error("HistoryEnabled() should be false without DATABASE_URL")
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("MACRO_SERVICE_URL", "http://macro.internal:9001")
	t.Setenv("MACRO_SERVICE_TIMEOUT", "10s")
	t.Setenv("DATABASE_URL", "postgres://brain:pw@localhost:5432/brain")
	t.Setenv("OUTPUT_DIR", "/var/lib/brain")
	t.Setenv("MAX_INDICATOR_AGE_DAYS", "5")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Macro.BaseURL != "http://macro.internal:9001" {
		t.Errorf("Macro.BaseURL = %s", cfg.Macro.BaseURL)
	}
	if cfg.Macro.Timeout != 10*time.Second {
		t.Errorf("Macro.Timeout = %v, want 10s", cfg.Macro.Timeout)
	}
	if !cfg.HistoryEnabled() {
		t.Error("HistoryEnabled() should be true with DATABASE_URL set")
	}
	if cfg.OutputDir != "/var/lib/brain" {
		t.Errorf("OutputDir = %s", cfg.OutputDir)
	}
	if cfg.MaxIndicatorAgeDays != 5 {
		t.Errorf("MaxIndicatorAgeDays = %d, want 5", cfg.MaxIndicatorAgeDays)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %s, want production", cfg.Env)
	}
}

func TestValidateRejectsBadEnv(t *testing.T) {
	os.Clearenv()
	t.Setenv("ENV", "sandbox")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject unknown ENV values")
	}
}

func TestValidateRejectsNegativeAge(t *testing.T) {
	os.Clearenv()
	t.Setenv("MAX_INDICATOR_AGE_DAYS", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject negative MAX_INDICATOR_AGE_DAYS")
	}
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	os.Clearenv()
	t.Setenv("MACRO_SERVICE_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Macro.Timeout != 30*time.Second {
		t.Errorf("Macro.Timeout = %v, want fallback 30s", cfg.Macro.Timeout)
	}
}
