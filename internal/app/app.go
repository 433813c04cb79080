// Package app wires together configuration, the settings store, the
// credential resolver and the API client into a single Deps struct that
// commands receive at runtime.
package app

import (
	"github.com/derickschaefer/biapi/internal/auth"
	"github.com/derickschaefer/biapi/internal/budgea"
	"github.com/derickschaefer/biapi/internal/config"
	"github.com/derickschaefer/biapi/internal/settings"
)

// Deps holds all runtime dependencies injected into command Run functions.
type Deps struct {
	Config   *config.Config
	Settings *settings.Store
	Resolver *auth.Resolver
	Client   *budgea.Client
}

// New opens the settings store and builds the client. Credentials are not
// read here; the resolver looks them up on each request.
func New(cfg *config.Config) (*Deps, error) {
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	resolver := auth.NewResolver(store)
	return &Deps{
		Config:   cfg,
		Settings: store,
		Resolver: resolver,
		Client:   budgea.NewClient(resolver, nil),
	}, nil
}

// Close releases the settings file.
func (d *Deps) Close() error {
	if d.Settings == nil {
		return nil
	}
	return d.Settings.Close()
}
