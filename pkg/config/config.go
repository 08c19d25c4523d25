// Package config loads the application configuration from a TOML file with
// environment-variable fallbacks.
//
// The file lives at <user config dir>/breadboard/config.toml and every
// field is optional; a missing file yields pure defaults. The GEMINI_API_KEY
// environment variable overrides the configured API key, so keys can stay
// out of dotfiles.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	API   APIConfig   `toml:"api"`
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// APIConfig configures the AI collaborator.
type APIConfig struct {
	// Key is the model API key. GEMINI_API_KEY overrides it.
	Key string `toml:"key"`
	// Model is the model identifier to request.
	Model string `toml:"model"`
	// URL overrides the API base URL, mainly for tests and proxies.
	URL string `toml:"url"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
	// TTLHours is the default entry lifetime; 0 means no expiry.
	TTLHours int `toml:"ttl_hours"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects and configures the design store backend.
type StoreConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`
	// Dir overrides the file store directory.
	Dir string `toml:"dir"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultModel is the model requested when the config names none.
const DefaultModel = "gemini-2.5-pro"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			Model: DefaultModel,
		},
		Cache: CacheConfig{
			Backend:  "file",
			TTLHours: 24,
		},
		Store: StoreConfig{
			Backend:       "file",
			MongoDatabase: "breadboard",
		},
	}
}

// Path returns the location of the config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "breadboard", "config.toml"), nil
}

// CacheDir returns the default file-cache directory.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "breadboard"), nil
}

// Load reads the configuration from the standard path. A missing file is
// not an error; defaults (plus env fallbacks) are returned instead.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default()), nil
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path, applying
// defaults for everything the file leaves unset and env fallbacks on top.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return applyEnv(cfg), nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.API.Model == "" {
		cfg.API.Model = DefaultModel
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.API.Key = key
	}
	return cfg
}
