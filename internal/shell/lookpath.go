// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrCommandNotFound is returned when an executable is not in PATH.
var ErrCommandNotFound = errors.New("command not found")

// LookPath finds an executable in PATH. Names containing a path separator are
// checked as given.
func LookPath(name string) (string, error) {
	if name == "" {
		return "", ErrCommandNotFound
	}

	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		if isExecutable(name) {
			return name, nil
		}

		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		candidate := filepath.Join(dir, name)
		if runtime.GOOS == goosWindows && filepath.Ext(candidate) == "" {
			candidate += ".exe"
		}

		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if runtime.GOOS == goosWindows {
		return true
	}

	return info.Mode()&0o111 != 0
}
