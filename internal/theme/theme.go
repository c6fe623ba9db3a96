// Package theme bundles the default blog theme and scaffolds new blog directories.
package theme

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultName is the directory name of the bundled theme.
const DefaultName = "default"

//go:embed default
var bundled embed.FS

// Default returns the bundled theme rooted at its template directory.
func Default() fs.FS {
	sub, err := fs.Sub(bundled, DefaultName)
	if err != nil {
		panic(err)
	}
	return sub
}

// Scaffold writes the bundled theme into dst. Existing files are kept unless
// force is set. It returns the relative paths it wrote.
func Scaffold(dst string, force bool) ([]string, error) {
	var written []string
	err := fs.WalkDir(Default(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if _, statErr := os.Stat(target); statErr == nil && !force {
			return nil
		}
		data, err := fs.ReadFile(Default(), path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	})
	return written, err
}
