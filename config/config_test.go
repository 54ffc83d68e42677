package config

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresSigningKey(t *testing.T) {
	t.Setenv("TOKEN_SIGNING_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected a configuration fault without TOKEN_SIGNING_KEY")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TOKEN_SIGNING_KEY", "test-signing-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected default TTL 1h, got %v", cfg.TokenTTL)
	}
	if cfg.DBType != "sqlite" {
		t.Errorf("expected default db type sqlite, got %q", cfg.DBType)
	}
	if cfg.TokenSigningKey != "test-signing-key" {
		t.Error("signing key was not read from the environment")
	}
}
