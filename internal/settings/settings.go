// Package settings provides the persisted key/value settings store behind
// `biapi config`. It is a thin bbolt wrapper with three buckets:
//
//	settings: values written by `biapi config set`
//	defaults: values seeded from the environment when the file is created
//	_meta:    schema version and created_at
//
// Defaults are captured once, on the first open of a fresh file. Changing an
// environment variable afterwards does not change them; it only affects
// stores created later.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Current schema version. Bump when bucket layout or key format changes.
const schemaVersion = 1

// Known setting keys.
const (
	KeyAccessToken  = "accessToken"
	KeyBaseURL      = "baseUrl"
	KeyDomain       = "domain"
	KeyClientID     = "clientId"
	KeyClientSecret = "clientSecret"
)

// Environment variables consulted for defaults.
const (
	EnvAccessToken  = "BIAPI_ACCESS_TOKEN"
	EnvBaseURL      = "BIAPI_BASE_URL"
	EnvDomain       = "BIAPI_DOMAIN"
	EnvClientID     = "BIAPI_CLIENT_ID"
	EnvClientSecret = "BIAPI_CLIENT_SECRET"
)

const (
	DefaultBaseURL = "https://demo.biapi.pro/2.0"
	DefaultDomain  = "demo"
)

// KnownKeys lists the documented keys in display order.
var KnownKeys = []string{KeyAccessToken, KeyBaseURL, KeyDomain, KeyClientID, KeyClientSecret}

var (
	bucketSettings = []byte("settings")
	bucketDefaults = []byte("defaults")
	bucketInternal = []byte("_meta")
)

// EnvDefaults returns the default value of every known key, taken from the
// environment with hardcoded fallbacks.
func EnvDefaults() map[string]string {
	return map[string]string{
		KeyAccessToken:  os.Getenv(EnvAccessToken),
		KeyBaseURL:      envOr(EnvBaseURL, DefaultBaseURL),
		KeyDomain:       envOr(EnvDomain, DefaultDomain),
		KeyClientID:     os.Getenv(EnvClientID),
		KeyClientSecret: os.Getenv(EnvClientSecret),
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Store wraps a bbolt database holding the settings.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the settings file at path.
// Parent directories are created automatically.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating settings directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening settings %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open settings file.
func (s *Store) Path() string {
	return s.db.Path()
}

// migrate ensures all buckets exist and seeds defaults on a fresh file.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSettings, bucketDefaults, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) != nil {
			return nil
		}
		defaults := tx.Bucket(bucketDefaults)
		for k, v := range EnvDefaults() {
			if err := defaults.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
			return err
		}
		return meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

// Get returns the value for key: the explicitly set value if any, else the
// seeded default. ok is false when the key is neither set nor defaulted.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSettings).Get([]byte(key)); v != nil {
			value, ok = string(v), true
			return nil
		}
		if v := tx.Bucket(bucketDefaults).Get([]byte(key)); v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	return value, ok, err
}

// Lookup returns the value for key, or "" when it is absent or unreadable.
func (s *Store) Lookup(key string) string {
	v, _, err := s.Get(key)
	if err != nil {
		return ""
	}
	return v
}

// Set stores an explicit value for key.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("setting key must not be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put([]byte(key), []byte(value))
	})
}

// Delete removes the explicit value for key; a seeded default, if any,
// becomes visible again.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Delete([]byte(key))
	})
}

// GetAll returns every visible setting: defaults overlaid by explicit values.
func (s *Store) GetAll() (map[string]string, error) {
	all := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketDefaults, bucketSettings} {
			err := tx.Bucket(b).ForEach(func(k, v []byte) error {
				all[string(k)] = string(v)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return all, err
}

// Clear removes every explicit value. Seeded defaults are kept.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketSettings); err != nil {
			return fmt.Errorf("clearing settings: %w", err)
		}
		_, err := tx.CreateBucket(bucketSettings)
		return err
	})
}

// SortedKeys returns the keys of m with the known keys first, in their
// documented order, followed by any others alphabetically.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range KnownKeys {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
