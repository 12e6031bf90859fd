// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// resolve makes p relative to dir unless it is absolute.
func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(dir, p)
}

// filesExist fails unless every path is an existing regular file.
func filesExist(fs afero.Fs, dir string, paths []string) error {
	for _, p := range paths {
		info, err := fs.Stat(resolve(dir, p))
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("%w: file %s", ErrMissingFileOrDirectory, p)
		}
	}

	return nil
}

// dirsExist fails unless every path is an existing directory.
func dirsExist(fs afero.Fs, dir string, paths []string) error {
	for _, p := range paths {
		info, err := fs.Stat(resolve(dir, p))
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: directory %s", ErrMissingFileOrDirectory, p)
		}
	}

	return nil
}

// filesAbsent fails if any path is an existing regular file.
// A directory of the same name does not count.
func filesAbsent(fs afero.Fs, dir string, paths []string) error {
	for _, p := range paths {
		info, err := fs.Stat(resolve(dir, p))
		if err == nil && info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrUnexpectedFile, p)
		}
	}

	return nil
}
