package site

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

func stageAssets(_ context.Context, bs *buildState) error {
	assets := []struct{ src, dst string }{
		{filepath.Join(bs.themeDir, "static"), filepath.Join(bs.outDir, "static")},
		{filepath.Join(bs.gen.blogDir, "images"), filepath.Join(bs.outDir, "images")},
	}
	for _, a := range assets {
		if info, err := os.Stat(a.src); err != nil || !info.IsDir() {
			slog.Debug("Asset directory not present, skipping", logfields.Path(a.src))
			continue
		}
		if err := os.RemoveAll(a.dst); err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "replace asset directory").
				WithContext("path", a.dst).Fatal().Build()
		}
		if err := CopyDir(a.src, a.dst); err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "copy assets").
				WithContext("path", a.src).Fatal().Build()
		}
	}
	return nil
}

// CopyDir recursively copies a directory tree, preserving file modes.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}
	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
