package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.NATSUrl != "nats://localhost:4222" {
		t.Errorf("expected default NATS url, got %s", cfg.NATSUrl)
	}
	if cfg.DebounceWindow != 500*time.Millisecond {
		t.Errorf("expected default debounce window 500ms, got %s", cfg.DebounceWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("FEED_DEBOUNCE_MS", "250")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("expected port override 9999, got %s", cfg.Port)
	}
	if cfg.DebounceWindow != 250*time.Millisecond {
		t.Errorf("expected debounce override 250ms, got %s", cfg.DebounceWindow)
	}
}

func TestLoadIgnoresInvalidDebounce(t *testing.T) {
	t.Setenv("FEED_DEBOUNCE_MS", "not-a-number")

	cfg := Load()
	if cfg.DebounceWindow != 500*time.Millisecond {
		t.Errorf("invalid debounce should fall back to 500ms, got %s", cfg.DebounceWindow)
	}
}
