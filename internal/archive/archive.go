// Package archive packages a build output directory as a deflate zip file.
package archive

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// Zip writes every regular file under dir into zipPath. Entry names are
// relative to dir's parent, so they all start with dir's base name. Entries
// are written in lexical order. It returns the number of files archived.
func Zip(dir, zipPath string) (int, error) {
	out, err := os.Create(zipPath)
	if err != nil {
		return 0, err
	}
	zw := zip.NewWriter(out)

	base := filepath.Dir(dir)
	count := 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		if err := addFile(zw, path, filepath.ToSlash(rel)); err != nil {
			return err
		}
		count++
		return nil
	})

	closeErr := zw.Close()
	if fileErr := out.Close(); closeErr == nil {
		closeErr = fileErr
	}
	if walkErr != nil {
		_ = os.Remove(zipPath)
		return 0, walkErr
	}
	return count, closeErr
}

func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = io.Copy(w, f)
	return err
}
