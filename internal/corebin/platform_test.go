package corebin

import (
	"errors"
	"testing"
)

func TestResolveAsset(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"darwin", "arm64", "darwin_arm64"},
		{"darwin", "amd64", "darwin_amd64"},
		{"linux", "arm64", "linux_arm64"},
		{"linux", "amd64", "linux_amd64"},
		{"windows", "arm64", "windows_arm64"},
		{"windows", "amd64", "windows_amd64"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := ResolveAsset(tt.goos, tt.goarch)
			if err != nil {
				t.Fatalf("ResolveAsset(%s, %s): %v", tt.goos, tt.goarch, err)
			}
			if got != tt.want {
				t.Errorf("ResolveAsset(%s, %s) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
			}
		})
	}
}

func TestResolveAsset_Unsupported(t *testing.T) {
	pairs := [][2]string{
		{"freebsd", "amd64"},
		{"linux", "386"},
		{"linux", "arm"},
		{"windows", "386"},
		{"darwin", "x64"},
		{"", ""},
	}
	for _, p := range pairs {
		_, err := ResolveAsset(p[0], p[1])
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("ResolveAsset(%q, %q) error = %v, want ErrUnsupportedPlatform", p[0], p[1], err)
		}
	}

	// Deterministic: the same pair fails the same way every time.
	_, e1 := ResolveAsset("plan9", "amd64")
	_, e2 := ResolveAsset("plan9", "amd64")
	if e1.Error() != e2.Error() {
		t.Errorf("errors differ: %q vs %q", e1, e2)
	}
	if e1.Error() != "unsupported platform: plan9-amd64" {
		t.Errorf("error = %q", e1)
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		version, asset, want string
	}{
		{"1.3.0", "darwin_arm64", "aerostack_1.3.0_darwin_arm64.tar.gz"},
		{"1.3.0", "linux_amd64", "aerostack_1.3.0_linux_amd64.tar.gz"},
		{"2.0.1", "windows_amd64", "aerostack_2.0.1_windows_amd64.zip"},
		{"2.0.1", "windows_arm64", "aerostack_2.0.1_windows_arm64.zip"},
	}
	for _, tt := range tests {
		if got := ArchiveName("aerostack", tt.version, tt.asset); got != tt.want {
			t.Errorf("ArchiveName(%q, %q) = %q, want %q", tt.version, tt.asset, got, tt.want)
		}
	}
}

func TestExecutableFor(t *testing.T) {
	if got := executableFor("aerostack", "windows_amd64"); got != "aerostack.exe" {
		t.Errorf("windows: %q", got)
	}
	if got := executableFor("aerostack", "linux_arm64"); got != "aerostack" {
		t.Errorf("linux: %q", got)
	}
}
