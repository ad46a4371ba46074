package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AuthRateLimitRPS != 1 {
		t.Errorf("expected default rate 1, got %v", cfg.AuthRateLimitRPS)
	}
	if cfg.AuthRateLimitBurst != 5 {
		t.Errorf("expected default burst 5, got %d", cfg.AuthRateLimitBurst)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FIREBASE_PROJECT_ID", "clinic-prod")
	t.Setenv("FIREBASE_WEB_API_KEY", "key-123")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "2.5")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "10")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.ProjectID != "clinic-prod" {
		t.Errorf("expected clinic-prod, got %q", cfg.ProjectID)
	}
	if cfg.WebAPIKey != "key-123" {
		t.Errorf("expected key-123, got %q", cfg.WebAPIKey)
	}
	if cfg.AuthRateLimitRPS != 2.5 {
		t.Errorf("expected rate 2.5, got %v", cfg.AuthRateLimitRPS)
	}
	if cfg.AuthRateLimitBurst != 10 {
		t.Errorf("expected burst 10, got %d", cfg.AuthRateLimitBurst)
	}
}

func TestProjectIDFallsBackToGoogleCloudProject(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "clinic-gcp")

	cfg := Load()

	if cfg.ProjectID != "clinic-gcp" {
		t.Errorf("expected clinic-gcp, got %q", cfg.ProjectID)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("AUTH_RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "also-not")

	cfg := Load()

	if cfg.AuthRateLimitRPS != 1 {
		t.Errorf("expected fallback rate 1, got %v", cfg.AuthRateLimitRPS)
	}
	if cfg.AuthRateLimitBurst != 5 {
		t.Errorf("expected fallback burst 5, got %d", cfg.AuthRateLimitBurst)
	}
}
