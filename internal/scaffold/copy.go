package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// templateSuffix is stripped from output names so template files are not
// picked up by tooling inside this repository.
const templateSuffix = ".tmpl"

// CopyTree copies the tree rooted at root in src to dest, creating
// directories as needed and applying tokens to every file. It returns the
// slash-separated paths written, relative to dest.
func CopyTree(src fs.FS, root, dest string, tokens map[string]string) ([]string, error) {
	var written []string
	err := fs.WalkDir(src, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		target := filepath.Join(dest, filepath.FromSlash(rel))

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			return nil
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		target = strings.TrimSuffix(target, templateSuffix)
		if err := os.WriteFile(target, []byte(ApplyTokens(string(data), tokens)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		written = append(written, strings.TrimSuffix(path.Clean(rel), templateSuffix))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}
