package corebin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aerostackdev/cli/internal/platform"
	"github.com/aerostackdev/cli/internal/userdata"
)

const sidecarSuffix = ".json"

// Installed records which release produced the cached binary.
type Installed struct {
	Asset       string    `json:"asset"`
	Version     string    `json:"version"`
	Path        string    `json:"path"`
	InstalledAt time.Time `json:"installed_at"`
}

// Ensure returns the path of a runnable core binary, downloading it only
// when it is absent. A present binary is returned without any network I/O.
func (c *Cache) Ensure(ctx context.Context) (string, error) {
	asset, err := ResolveAsset(c.goos, c.goarch)
	if err != nil {
		return "", err
	}

	path := c.BinaryPath()
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		if rec, err := c.LoadInstalled(); err == nil && rec != nil {
			c.logger.Debug("using cached core binary", "path", path, "version", rec.Version, "installed_at", rec.InstalledAt)
		} else {
			c.logger.Debug("using cached core binary", "path", path)
		}
		return path, nil
	}

	version := c.LatestVersion(ctx)
	return c.Install(ctx, version, asset)
}

// Install downloads, verifies and extracts one release into the install
// directory. Scratch files live in a temp dir removed on every exit path.
func (c *Cache) Install(ctx context.Context, version, asset string) (string, error) {
	tmpDir, err := os.MkdirTemp("", c.binary+"-core-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	archive := ArchiveName(c.binary, version, asset)
	url := c.releaseURL(version, archive)
	fmt.Fprintf(c.progress, "Downloading %s core v%s (%s)...\n", c.binary, version, asset)
	c.logger.Debug("downloading core binary", "url", url)

	archivePath := filepath.Join(tmpDir, archive)
	if err := c.download(ctx, url, archivePath); err != nil {
		return "", err
	}

	switch err := c.verifyChecksum(ctx, version, archivePath); {
	case errors.Is(err, errNoChecksums):
		c.logger.Warn("release has no checksums, skipping verification", "version", version)
	case err != nil:
		return "", fmt.Errorf("verifying %s: %w", archive, err)
	}

	extracted, err := extractExecutable(archivePath, filepath.Join(tmpDir, "extract"), executableFor(c.binary, asset))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.installDir, userdata.DirPermNormal); err != nil {
		return "", fmt.Errorf("creating install directory: %w", err)
	}
	dest := c.BinaryPath()
	if err := platform.MoveFile(extracted, dest); err != nil {
		return "", fmt.Errorf("installing binary: %w", err)
	}
	if err := platform.MakeExecutable(dest); err != nil {
		return "", fmt.Errorf("setting executable permission: %w", err)
	}

	rec := &Installed{Asset: asset, Version: version, Path: dest, InstalledAt: time.Now().UTC()}
	if err := c.saveInstalled(rec); err != nil {
		c.logger.Warn("could not record installed version", "error", err)
	}
	return dest, nil
}

func (c *Cache) sidecarPath() string {
	return filepath.Join(c.installDir, c.binary+sidecarSuffix)
}

// LoadInstalled reads the record written by the last Install.
// Returns nil, nil if no record exists.
func (c *Cache) LoadInstalled() (*Installed, error) {
	data, err := os.ReadFile(c.sidecarPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading install record: %w", err)
	}

	var rec Installed
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing install record: %w", err)
	}
	return &rec, nil
}

func (c *Cache) saveInstalled(rec *Installed) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling install record: %w", err)
	}
	return platform.WriteFileAtomic(c.sidecarPath(), data, 0o644)
}
