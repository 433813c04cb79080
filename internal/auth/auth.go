// Package auth resolves the credentials and endpoint every API call needs.
// Values are looked up lazily, on each call, through an explicit ordered list
// of sources (first non-empty value wins):
//
//  1. the persisted settings store
//  2. the BIAPI_* environment variable
//  3. a hardcoded default (base URL only)
package auth

import (
	"os"

	"github.com/derickschaefer/biapi/internal/apperr"
	"github.com/derickschaefer/biapi/internal/settings"
)

// minTokenLength is the shortest string accepted as a plausible API token.
const minTokenLength = 20

// Setting pairs a settings-store key with its environment variable.
type Setting struct {
	Key string
	Env string
}

var (
	AccessToken  = Setting{settings.KeyAccessToken, settings.EnvAccessToken}
	BaseURL      = Setting{settings.KeyBaseURL, settings.EnvBaseURL}
	ClientID     = Setting{settings.KeyClientID, settings.EnvClientID}
	ClientSecret = Setting{settings.KeyClientSecret, settings.EnvClientSecret}
)

// Source is one step of the lookup chain.
type Source struct {
	Name string
	Find func(Setting) string
}

// Lookuper is the read side of the settings store.
type Lookuper interface {
	Lookup(key string) string
}

// StoreSource looks settings up in the persisted store.
func StoreSource(store Lookuper) Source {
	return Source{
		Name: "settings",
		Find: func(s Setting) string { return store.Lookup(s.Key) },
	}
}

// EnvSource looks settings up in the process environment.
func EnvSource() Source {
	return Source{
		Name: "env",
		Find: func(s Setting) string { return os.Getenv(s.Env) },
	}
}

// Credentials holds the OAuth client pair. Either field may be empty.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Complete reports whether both halves of the pair are set.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Resolver derives the effective token, base URL and client credentials.
type Resolver struct {
	Sources []Source
}

// NewResolver builds the standard chain: store first, then environment.
// A nil store skips the first step.
func NewResolver(store Lookuper) *Resolver {
	var sources []Source
	if store != nil {
		sources = append(sources, StoreSource(store))
	}
	sources = append(sources, EnvSource())
	return &Resolver{Sources: sources}
}

// resolve returns the first non-empty value from the chain.
func (r *Resolver) resolve(s Setting) string {
	for _, src := range r.Sources {
		if v := src.Find(s); v != "" {
			return v
		}
	}
	return ""
}

// AccessToken returns the bearer token, or a ConfigError explaining how to
// set one.
func (r *Resolver) AccessToken() (string, error) {
	if tok := r.resolve(AccessToken); tok != "" {
		return tok, nil
	}
	return "", apperr.Configf(
		"access token not configured.\n\n" +
			"Set it one of these ways:\n" +
			"  1. Settings:     biapi config set accessToken <your-token>\n" +
			"  2. Environment:  export BIAPI_ACCESS_TOKEN=<your-token>\n\n" +
			"Get your token from your Budgea API provider.",
	)
}

// BaseURL returns the API base URL. It never fails.
func (r *Resolver) BaseURL() string {
	if u := r.resolve(BaseURL); u != "" {
		return u
	}
	return settings.DefaultBaseURL
}

// ClientCredentials returns the client id/secret pair; each half resolves
// independently and may be empty.
func (r *Resolver) ClientCredentials() Credentials {
	return Credentials{
		ClientID:     r.resolve(ClientID),
		ClientSecret: r.resolve(ClientSecret),
	}
}

// ValidTokenFormat reports whether token looks like an API token.
func ValidTokenFormat(token string) bool {
	return len(token) >= minTokenLength
}
