package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "telegram:\n  token: from-file\nquiz:\n  source: static\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("QUIZ_SOURCE", "generated")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Fatalf("expected env to win, got %q", cfg.Telegram.Token)
	}
	if cfg.Quiz.Source != "generated" {
		t.Fatalf("expected env source, got %q", cfg.Quiz.Source)
	}
}

func TestLoadToleratesMissingFile(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tok")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "tok" {
		t.Fatalf("expected env-only config, got %q", cfg.Telegram.Token)
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing token to be fatal")
	}

	cfg.Telegram.Token = "tok"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	cfg.Quiz.Source = "generated"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected generated source to require an api key")
	}
	cfg.LLM.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestTTLDuration(t *testing.T) {
	if d := TTLDuration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback, got %v", d)
	}
	if d := TTLDuration("2s", time.Minute); d != 2*time.Second {
		t.Fatalf("expected parsed value, got %v", d)
	}
	if d := TTLDuration("bogus", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback on parse error, got %v", d)
	}
}
