package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/platform"
	"github.com/aerostackdev/cli/internal/userdata"
)

const fileType = "json"

// Keys, also used as AEROSTACK_<KEY> environment overrides.
const (
	KeyToken    = "token"
	KeyEmail    = "email"
	KeyRegistry = "registry"
)

// ErrNotAuthenticated is returned by commands that need a stored token.
var ErrNotAuthenticated = errors.New("not logged in; run \"" + branding.CLIName() + " login\" first")

// AuthConfig is the persisted record. Empty fields are omitted on disk.
type AuthConfig struct {
	Token    string `json:"token,omitempty"`
	Email    string `json:"email,omitempty"`
	Registry string `json:"registry,omitempty"`
}

// Store reads and writes one config file.
type Store struct {
	path string
}

// NewStore returns a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Default returns the Store at the standard per-user location.
func Default() *Store {
	return NewStore(userdata.ConfigPath())
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the file contents overlaid with AEROSTACK_TOKEN,
// AEROSTACK_EMAIL and AEROSTACK_REGISTRY. A missing or malformed file reads
// as an empty record.
func (s *Store) Load() AuthConfig {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	for _, key := range []string{KeyToken, KeyEmail, KeyRegistry} {
		_ = v.BindEnv(key)
	}

	// Ignore error if config file doesn't exist yet or is not valid JSON.
	_ = v.ReadInConfig()

	return AuthConfig{
		Token:    v.GetString(KeyToken),
		Email:    v.GetString(KeyEmail),
		Registry: v.GetString(KeyRegistry),
	}
}

// IsAuthenticated reports whether the config file holds a non-empty token.
// AEROSTACK_TOKEN alone does not count; it only overlays requests.
func (s *Store) IsAuthenticated() bool {
	return s.readFile().Token != ""
}

// RegistryURL resolves the registry base URL: flag, then
// AEROSTACK_REGISTRY, then the stored registry, then the default.
func (s *Store) RegistryURL(flag string) string {
	url := flag
	if url == "" {
		url = s.Load().Registry
	}
	if url == "" {
		url = branding.RegistryURL()
	}
	return strings.TrimRight(url, "/")
}

// Save replaces the stored record with cfg.
func (s *Store) Save(cfg AuthConfig) error {
	_, err := s.Update(func(c *AuthConfig) { *c = cfg })
	return err
}

// Update applies fn to the on-disk record under an exclusive lock and
// writes the result atomically. Environment overrides are never persisted.
func (s *Store) Update(fn func(*AuthConfig)) (AuthConfig, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, userdata.DirPermSecure); err != nil {
		return AuthConfig{}, fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	lock, err := platform.Lock(s.path + ".lock")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("locking config: %w", err)
	}
	defer lock.Unlock()

	cfg := s.readFile()
	fn(&cfg)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("marshaling config: %w", err)
	}
	if err := platform.WriteFileAtomic(s.path, append(data, '\n'), userdata.FilePermSecure); err != nil {
		return AuthConfig{}, fmt.Errorf("writing config file: %w", err)
	}
	return cfg, nil
}

// readFile returns the record on disk without environment overlay.
func (s *Store) readFile() AuthConfig {
	var cfg AuthConfig
	data, err := os.ReadFile(s.path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AuthConfig{}
	}
	return cfg
}
