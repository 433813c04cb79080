// Package config resolves biapi's runtime options: where the settings file
// lives and how output is formatted. Credentials are not handled here; they
// live in the settings store and are resolved by package auth.
//
// Resolution order (first non-empty value wins):
//  1. CLI flag (--settings, --format)
//  2. Environment variable (BIAPI_SETTINGS_PATH, BIAPI_FORMAT)
//  3. Built-in default
package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	DefaultFormat    = "pretty"
	AppDir           = "biapi-cli"
	SettingsFileName = "settings.db"
	EnvSettingsPath  = "BIAPI_SETTINGS_PATH"
	EnvFormat        = "BIAPI_FORMAT"
)

// Flags carries the raw global flag values. Empty means "not given".
type Flags struct {
	SettingsPath string
	Format       string
	Out          string
	Quiet        bool
	Debug        bool
}

// Config is the fully-resolved runtime configuration.
type Config struct {
	SettingsPath string
	Format       string
	Out          string
	Quiet        bool
	Debug        bool
}

// Load resolves configuration from all sources.
func Load(f Flags) (*Config, error) {
	cfg := &Config{
		Format: DefaultFormat,
		Out:    f.Out,
		Quiet:  f.Quiet,
		Debug:  f.Debug,
	}

	// Layer 1: environment
	if v := os.Getenv(EnvSettingsPath); v != "" {
		cfg.SettingsPath = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}

	// Layer 2: CLI flags
	if f.SettingsPath != "" {
		cfg.SettingsPath = f.SettingsPath
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}

	if cfg.SettingsPath == "" {
		p, err := DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		cfg.SettingsPath = p
	}
	return cfg, nil
}

// DefaultSettingsPath returns <user config dir>/biapi-cli/settings.db.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot locate a settings directory; set " + EnvSettingsPath)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppDir, SettingsFileName), nil
}
