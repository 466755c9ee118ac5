package userdata

import (
	"os"
	"path/filepath"

	"github.com/aerostackdev/cli/internal/branding"
)

// Directory and file name constants under ~/.aerostack.
const (
	BinDir     = "bin"
	ConfigFile = "config.json"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// HomeBase returns the directory the per-user state hangs off. HOME wins,
// then USERPROFILE, then the OS temp dir so a stripped-down environment still
// has somewhere to cache the core binary.
func HomeBase() string {
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	if v := os.Getenv("USERPROFILE"); v != "" {
		return v
	}
	return os.TempDir()
}

// Root returns ~/.aerostack.
func Root() string {
	return filepath.Join(HomeBase(), branding.HomeDir())
}

// ConfigPath returns ~/.aerostack/config.json.
func ConfigPath() string {
	return filepath.Join(Root(), ConfigFile)
}

// InstallDir returns the directory holding the cached core binary.
// It checks the AEROSTACK_INSTALL_DIR environment variable first,
// then falls back to ~/.aerostack/bin.
func InstallDir() string {
	if v := os.Getenv(branding.EnvVar("INSTALL_DIR")); v != "" {
		return v
	}
	return filepath.Join(Root(), BinDir)
}
