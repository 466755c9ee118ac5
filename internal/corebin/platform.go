package corebin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPlatform is returned for any OS/arch pair without a
// published release asset.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// assets maps GOOS → GOARCH → release asset identifier.
var assets = map[string]map[string]string{
	"darwin":  {"arm64": "darwin_arm64", "amd64": "darwin_amd64"},
	"linux":   {"arm64": "linux_arm64", "amd64": "linux_amd64"},
	"windows": {"arm64": "windows_arm64", "amd64": "windows_amd64"},
}

// ResolveAsset returns the asset identifier for an OS/arch pair.
func ResolveAsset(goos, goarch string) (string, error) {
	if a, ok := assets[goos][goarch]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %s-%s", ErrUnsupportedPlatform, goos, goarch)
}

// ArchiveName returns the release archive filename for a version and asset,
// matching the GoReleaser template <binary>_<version>_<os>_<arch>.<ext>.
// Windows assets ship as .zip, everything else as .tar.gz.
func ArchiveName(binary, version, asset string) string {
	return fmt.Sprintf("%s_%s_%s.%s", binary, version, asset, archiveExt(asset))
}

func archiveExt(asset string) string {
	if isWindowsAsset(asset) {
		return "zip"
	}
	return "tar.gz"
}

func isWindowsAsset(asset string) bool {
	return strings.HasPrefix(asset, "windows")
}

// executableFor returns the executable name shipped inside an asset's archive.
func executableFor(binary, asset string) string {
	if isWindowsAsset(asset) {
		return binary + ".exe"
	}
	return binary
}
