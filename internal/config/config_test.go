package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if cfg.MediaServerMaxBytes != DefaultMediaServerMaxBytes {
		t.Errorf("MediaServerMaxBytes = %d, want %d", cfg.MediaServerMaxBytes, DefaultMediaServerMaxBytes)
	}
	if !cfg.EngineEnabled {
		t.Error("EngineEnabled should default to true")
	}
	if cfg.IsProduction() {
		t.Error("default APP_ENV should not be production")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_UPLOAD_BYTES", "8388608")
	t.Setenv("MEDIA_SERVER_MAX_BYTES", "1048576")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ENGINE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %s, want 9000", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.MaxUploadBytes != 8388608 {
		t.Errorf("MaxUploadBytes = %d, want 8388608", cfg.MaxUploadBytes)
	}
	if cfg.EngineEnabled {
		t.Error("EngineEnabled = true, want false")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "banana")
	t.Setenv("ENGINE_ENABLED", "not-a-bool")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want default on parse failure", cfg.MaxUploadBytes)
	}
	if !cfg.EngineEnabled {
		t.Error("EngineEnabled should fall back to default on parse failure")
	}
}

func TestLoadRejectsInvertedThresholds(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("MEDIA_SERVER_MAX_BYTES", "2048")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when media threshold exceeds upload ceiling")
	}
}
