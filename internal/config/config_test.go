package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "http://localhost:5000" {
		t.Errorf("Unexpected default API URL %q", cfg.APIURL)
	}
	if cfg.TickRate != 50 {
		t.Errorf("Unexpected default tick rate %d", cfg.TickRate)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("Unexpected default request timeout %v", cfg.RequestTimeout)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("NOVASTRIKE_API_URL", "https://game.example.com")
	t.Setenv("NOVASTRIKE_TICK_RATE", "30")
	t.Setenv("NOVASTRIKE_REQUEST_TIMEOUT", "3s")
	t.Setenv("NOVASTRIKE_TOKEN_FILE", "/tmp/tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "https://game.example.com" {
		t.Errorf("API URL override not applied: %q", cfg.APIURL)
	}
	if cfg.TickRate != 30 {
		t.Errorf("Tick rate override not applied: %d", cfg.TickRate)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("Timeout override not applied: %v", cfg.RequestTimeout)
	}
	if cfg.TokenFile != "/tmp/tok" {
		t.Errorf("Token file override not applied: %q", cfg.TokenFile)
	}
}

func TestInvalidValue(t *testing.T) {
	t.Setenv("NOVASTRIKE_TICK_RATE", "fast")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a non-numeric tick rate")
	}
}
