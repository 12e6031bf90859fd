// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	// ErrFileCopy is returned when a file copy operation fails.
	ErrFileCopy = errors.New("file copy error")
	// ErrFilePath is returned when a file path operation fails.
	ErrFilePath = errors.New("file path error")
)

// copyFile copies one file, keeping its permission bits so an executable stays executable.
func copyFile(srcFs afero.Fs, src string, dstFs afero.Fs, dst string) error {
	info, err := srcFs.Stat(src)
	if err != nil {
		return errors.Join(ErrFileCopy, err)
	}

	b, err := afero.ReadFile(srcFs, src)
	if err != nil {
		return errors.Join(ErrFileCopy, err)
	}

	if err := afero.WriteFile(dstFs, dst, b, info.Mode().Perm()); err != nil {
		return errors.Join(ErrFileCopy, err)
	}

	return nil
}

// copyTree copies the contents of directory src into dst, creating dst if needed.
func copyTree(ctx context.Context, srcFs afero.Fs, src string, dstFs afero.Fs, dst string) error {
	return afero.Walk(srcFs, src, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Join(ErrFilePath, err)
		}

		dstPath := filepath.Clean(filepath.Join(dst, relPath))

		if info.IsDir() {
			return dstFs.MkdirAll(dstPath, sevenFiveFive)
		}

		return copyFile(srcFs, path, dstFs, dstPath)
	})
}
