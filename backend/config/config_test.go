package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.MaxRequestBytes != 1<<20 {
		t.Errorf("Expected default request limit 1MiB, got %d", cfg.MaxRequestBytes)
	}
	if cfg.DefaultParity != "EC:4" {
		t.Errorf("Expected default parity EC:4, got %s", cfg.DefaultParity)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"PORT":                 "9090",
		"CACHE_TTL":            "60",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"MAX_REQUEST_BYTES":    "4096",
		"DEFAULT_PARITY":       "EC:2",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 60 {
		t.Errorf("Expected cache TTL 60, got %d", cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("Unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MaxRequestBytes != 4096 {
		t.Errorf("Expected request limit 4096, got %d", cfg.MaxRequestBytes)
	}
	if cfg.DefaultParity != "EC:2" {
		t.Errorf("Expected parity EC:2, got %s", cfg.DefaultParity)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"CACHE_TTL": "15"}))

	path := filepath.Join(t.TempDir(), "sizer.env")
	content := "PORT=7070\nCACHE_TTL=999\nDEFAULT_PARITY=EC:3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	os.Setenv("ENV_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("Expected port from env file 7070, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 15 {
		t.Errorf("Expected environment to win over env file, got %d", cfg.CacheTTL)
	}
	if cfg.DefaultParity != "EC:3" {
		t.Errorf("Expected parity EC:3, got %s", cfg.DefaultParity)
	}
	if cfg.EnvFile != path {
		t.Errorf("Expected EnvFile %s, got %s", path, cfg.EnvFile)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not a number", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"negative cache ttl", map[string]string{"CACHE_TTL": "-1"}},
		{"zero request limit", map[string]string{"MAX_REQUEST_BYTES": "0"}},
		{"malformed parity", map[string]string{"DEFAULT_PARITY": "four"}},
		{"parity with trailing text", map[string]string{"DEFAULT_PARITY": "EC:4x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))

			if _, err := Load(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadConfig_UnreadableEnvFile(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))
	// A directory exists but cannot be parsed as a dotenv file
	os.Setenv("ENV_FILE", t.TempDir())

	if _, err := Load(); err == nil {
		t.Error("Expected error for unreadable env file, got nil")
	}
}
