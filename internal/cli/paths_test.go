package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Run("defaults under home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("honors XDG_CACHE_HOME", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestConfigDir(t *testing.T) {
	t.Run("defaults under home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")

		dir, err := configDir()
		if err != nil {
			t.Fatalf("configDir() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".config", appName); dir != want {
			t.Errorf("configDir() = %q, want %q", dir, want)
		}
	})

	t.Run("honors XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

		dir, err := configDir()
		if err != nil {
			t.Fatalf("configDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/xdg-config", appName); dir != want {
			t.Errorf("configDir() = %q, want %q", dir, want)
		}
	})
}
