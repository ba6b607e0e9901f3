// Package config handles loading and saving user configuration for yomikata.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all user configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Tagger     TaggerConfig     `yaml:"tagger"`
	Cache      CacheConfig      `yaml:"cache"`
}

// DictionaryConfig configures the Jisho client.
type DictionaryConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// TaggerConfig configures the tagger lifecycle.
type TaggerConfig struct {
	LoadTimeoutSeconds int `yaml:"load_timeout_seconds"`
}

// CacheConfig configures the local lookup cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			BaseURL:        "https://jisho.org/api/v1/search/words",
			TimeoutSeconds: 15,
		},
		Tagger: TaggerConfig{
			LoadTimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Timeout returns the dictionary request timeout.
func (d DictionaryConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// LoadTimeout returns the tagger readiness bound.
func (t TaggerConfig) LoadTimeout() time.Duration {
	return time.Duration(t.LoadTimeoutSeconds) * time.Second
}

// Load reads config.yaml from dir, falling back to defaults when the file
// does not exist. Values missing from the file keep their defaults.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to config.yaml in dir.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "yomikata"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// CachePath returns the configured cache path, defaulting to lookups.db
// inside the config directory.
func (c *Config) CachePath(configDir string) string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(configDir, "lookups.db")
}
