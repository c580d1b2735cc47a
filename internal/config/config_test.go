package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.YouTubeTimeout != 10*time.Second {
		t.Errorf("YouTubeTimeout = %v, want 10s", cfg.YouTubeTimeout)
	}
	if cfg.YouTubeChannelTimeout != 5*time.Second {
		t.Errorf("YouTubeChannelTimeout = %v, want 5s", cfg.YouTubeChannelTimeout)
	}
	if cfg.ExtractedDir != "extracted_json" {
		t.Errorf("ExtractedDir = %q, want extracted_json", cfg.ExtractedDir)
	}
}

func TestLoadReleaseRequiresJWTSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", defaultJWTSecret)

	if _, err := Load(); err == nil {
		t.Fatal("Load() in release mode with default JWT secret should fail")
	}
}

func TestLoadRejectsNonPositiveCapacity(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("CACHE_CAPACITY", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with CACHE_CAPACITY=0 should fail")
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "valid", value: "90s", want: 90 * time.Second},
		{name: "invalid falls back", value: "soon", want: time.Minute},
		{name: "empty falls back", value: "", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvDuration("TEST_DURATION", time.Minute); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}
