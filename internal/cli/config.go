package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-level defaults loaded from the config file
// (~/.config/pageflow/config.toml). Every field has a working default,
// so a missing file is not an error.
type Config struct {
	// Estimator is the default height estimator (measure, analytic).
	Estimator string `toml:"estimator"`

	// Scale is the default PNG raster scale.
	Scale float64 `toml:"scale"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// Server holds preview service defaults.
	Server ServerConfig `toml:"server"`
}

// ServerConfig configures the preview service.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// RedisURL enables the Redis artifact cache when set
	// (redis://host:port/db). Empty means file cache.
	RedisURL string `toml:"redis_url"`

	// MongoURI enables the MongoDB document store when set. Empty
	// means documents are held in memory.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the database name for the document store.
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Estimator: "measure",
		Scale:     2.0,
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: appName,
		},
	}
}

// LoadConfig reads the config file at path, or the default location
// when path is empty. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// configDir returns the config directory using XDG standard
// (~/.config/pageflow/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
