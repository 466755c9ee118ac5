package corebin

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const checksumsFile = "checksums.txt"

// errNoChecksums means the release did not publish a checksums file.
var errNoChecksums = errors.New("checksums.txt not published for release")

// releaseURL returns the download URL of a file attached to a release.
func (c *Cache) releaseURL(version, file string) string {
	return fmt.Sprintf("%s/%s/releases/download/v%s/%s", c.downloadBase, c.repo, version, file)
}

func (c *Cache) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.httpClient.Do(req)
}

// download streams url into destPath, reporting percentage progress when
// the server sends a Content-Length.
func (c *Cache) download(ctx context.Context, url, destPath string) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s (status %d)", url, resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if total > 0 {
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(c.progress, "\rDownloading... %d%%", percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading download stream: %w", readErr)
		}
	}
	if total > 0 {
		fmt.Fprintln(c.progress)
	}

	return f.Close()
}

// verifyChecksum checks archivePath against the release's checksums.txt.
// It returns errNoChecksums when the release has none.
func (c *Cache) verifyChecksum(ctx context.Context, version, archivePath string) error {
	resp, err := c.get(ctx, c.releaseURL(version, checksumsFile))
	if err != nil {
		return fmt.Errorf("downloading checksums: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNoChecksums
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("checksums download returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading checksums: %w", err)
	}

	expected, err := lookupChecksum(string(body), filepath.Base(archivePath))
	if err != nil {
		return err
	}

	actual, err := fileSHA256(archivePath)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

// lookupChecksum finds the hash for name in a "sha256  filename" listing.
func lookupChecksum(listing, name string) (string, error) {
	for _, line := range strings.Split(listing, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 2 && strings.TrimPrefix(parts[1], "*") == name {
			return parts[0], nil
		}
	}
	return "", fmt.Errorf("no checksum found for %s in %s", name, checksumsFile)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening archive for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("computing checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// extractExecutable pulls the entry named exe (at any depth) out of a
// tar.gz or zip archive into destDir and returns its path.
func extractExecutable(archivePath, destDir, exe string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating extract directory: %w", err)
	}
	if strings.HasSuffix(archivePath, ".zip") {
		return extractFromZip(archivePath, destDir, exe)
	}
	return extractFromTarGz(archivePath, destDir, exe)
}

func extractFromTarGz(archivePath, destDir, exe string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading tar entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != exe {
			continue
		}
		return writeExecutable(filepath.Join(destDir, exe), tr)
	}

	return "", fmt.Errorf("%s not found in archive", exe)
}

func extractFromZip(archivePath, destDir, exe string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	for _, zf := range r.File {
		if zf.FileInfo().IsDir() || filepath.Base(zf.Name) != exe {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return "", fmt.Errorf("opening zip entry: %w", err)
		}
		path, err := writeExecutable(filepath.Join(destDir, exe), rc)
		rc.Close()
		return path, err
	}

	return "", fmt.Errorf("%s not found in zip archive", exe)
}

func writeExecutable(destPath string, src io.Reader) (string, error) {
	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return "", fmt.Errorf("creating binary file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("extracting binary: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing binary file: %w", err)
	}
	return destPath, nil
}
