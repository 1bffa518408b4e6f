package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Estimator != "measure" {
		t.Errorf("Estimator = %q, want measure default", cfg.Estimator)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080 default", cfg.Server.Addr)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
estimator = "analytic"
scale = 1.5

[server]
addr = ":9090"
redis_url = "redis://localhost:6379/0"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Estimator != "analytic" {
		t.Errorf("Estimator = %q", cfg.Estimator)
	}
	if cfg.Scale != 1.5 {
		t.Errorf("Scale = %v", cfg.Scale)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("Server.RedisURL = %q", cfg.Server.RedisURL)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MongoDatabase != appName {
		t.Errorf("Server.MongoDatabase = %q, want %q", cfg.Server.MongoDatabase, appName)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`not_a_setting = true`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`estimator = [`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}
