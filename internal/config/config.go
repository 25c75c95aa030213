// Package config manages clvm-tools configuration. Configuration is
// optional: the tools run anywhere, and an absent config file yields
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	ConfigFile = ".clvm-tools.toml"
	DataDir    = ".clvm-tools"
	SessionsDB = "sessions.db"
)

// Config represents the clvm-tools configuration.
type Config struct {
	DatabasePath string   `toml:"database_path"` // Session store; defaults under the home data dir
	SearchPaths  []string `toml:"search_paths"`  // Extra directories for symbol table lookup
	NoColor      bool     `toml:"no_color"`
	path         string   // directory the config file was found in, if any
}

// findConfigFile walks up from the current directory looking for a
// config file.
func findConfigFile() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load loads the configuration, returning defaults when no config
// file exists.
func Load() (*Config, error) {
	path, found := findConfigFile()
	if !found {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.path = filepath.Dir(path)
	return &cfg, nil
}

// DatabasePathOrDefault returns the configured session database path,
// or the default under the user's home directory.
func (c *Config) DatabasePathOrDefault() (string, error) {
	if c.DatabasePath != "" {
		if filepath.IsAbs(c.DatabasePath) || c.path == "" {
			return c.DatabasePath, nil
		}
		return filepath.Join(c.path, c.DatabasePath), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DataDir, SessionsDB), nil
}

// ResolvedSearchPaths returns the symbol search paths, relative
// entries resolved against the config file location.
func (c *Config) ResolvedSearchPaths() []string {
	if c.path == "" {
		return c.SearchPaths
	}
	resolved := make([]string, len(c.SearchPaths))
	for i, p := range c.SearchPaths {
		if filepath.IsAbs(p) {
			resolved[i] = p
		} else {
			resolved[i] = filepath.Join(c.path, p)
		}
	}
	return resolved
}
