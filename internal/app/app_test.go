package app_test

import (
	"path/filepath"
	"testing"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/apperr"
	"github.com/derickschaefer/biapi/internal/config"
	"github.com/derickschaefer/biapi/internal/settings"
)

func TestNewWiresResolverToStore(t *testing.T) {
	t.Setenv(settings.EnvAccessToken, "")
	t.Setenv(settings.EnvBaseURL, "")
	cfg := &config.Config{SettingsPath: filepath.Join(t.TempDir(), "s.db"), Format: "json"}

	deps, err := app.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer deps.Close()

	if _, err := deps.Resolver.AccessToken(); apperr.KindOf(err) != apperr.KindConfiguration {
		t.Errorf("expected configuration error before a token is set, got %v", err)
	}
	if err := deps.Settings.Set(settings.KeyAccessToken, "stored-token"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	tok, err := deps.Resolver.AccessToken()
	if err != nil || tok != "stored-token" {
		t.Errorf("resolver should see stored token, got %q (%v)", tok, err)
	}
	if deps.Client == nil {
		t.Error("Client should be built")
	}
}

func TestCloseWithoutStore(t *testing.T) {
	if err := (&app.Deps{}).Close(); err != nil {
		t.Errorf("Close on empty deps: %v", err)
	}
}
