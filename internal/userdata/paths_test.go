package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeBase(t *testing.T) {
	tests := []struct {
		name        string
		home        string
		userProfile string
		want        string
	}{
		{"HOME wins", "/home/a", "C:\\Users\\a", "/home/a"},
		{"USERPROFILE fallback", "", "C:\\Users\\a", "C:\\Users\\a"},
		{"temp dir fallback", "", "", os.TempDir()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", tt.home)
			t.Setenv("USERPROFILE", tt.userProfile)
			if got := HomeBase(); got != tt.want {
				t.Errorf("HomeBase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstallDir_EnvOverride(t *testing.T) {
	t.Setenv("AEROSTACK_INSTALL_DIR", "/opt/aerostack")
	if got := InstallDir(); got != "/opt/aerostack" {
		t.Errorf("InstallDir() = %q, want /opt/aerostack", got)
	}
}

func TestInstallDir_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv("AEROSTACK_INSTALL_DIR", "")
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".aerostack", "bin")
	if got := InstallDir(); got != want {
		t.Errorf("InstallDir() = %q, want %q", got, want)
	}
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".aerostack", "config.json")
	if got := ConfigPath(); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}
