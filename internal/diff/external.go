// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diff

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/matt-FFFFFF/intest/internal/shell"
	"github.com/spf13/afero"
)

// ErrToolFailed is returned when the external diff tool exits with an error.
var ErrToolFailed = errors.New("diff tool failed")

const (
	expectedFile = "expected"
	actualFile   = "actual"
	tempPattern  = "intest-diff-"
)

// External runs an external diff tool such as icdiff as
// `<tool> expected actual` in a temporary directory.
// Any failure falls back to Fallback.
type External struct {
	Tool     string
	Executor shell.Executor
	Fallback Renderer
	// Fs is where the temporary files are written. The tool reads them from disk,
	// so this must be backed by the OS filesystem.
	Fs afero.Fs
}

var _ Renderer = (*External)(nil)

// NewExternal creates an External renderer using the default shell and the unified fallback.
func NewExternal(tool string) *External {
	return &External{
		Tool:     tool,
		Executor: &shell.OSShell{},
		Fallback: Unified{},
		Fs:       afero.NewOsFs(),
	}
}

// Render implements Renderer.
func (e *External) Render(ctx context.Context, expected, actual string) string {
	out, err := e.run(ctx, expected, actual)
	if err != nil {
		ctxlog.Debug(ctx, "external diff failed, using fallback", "tool", e.Tool, "error", err)
		return e.fallback().Render(ctx, expected, actual)
	}

	return out
}

func (e *External) run(ctx context.Context, expected, actual string) (string, error) {
	if _, err := shell.LookPath(e.Tool); err != nil {
		return "", err
	}

	fs := e.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	dir, err := afero.TempDir(fs, "", tempPattern)
	if err != nil {
		return "", err
	}

	defer fs.RemoveAll(dir) //nolint:errcheck

	if err := afero.WriteFile(fs, filepath.Join(dir, expectedFile), []byte(expected), 0o600); err != nil {
		return "", err
	}

	if err := afero.WriteFile(fs, filepath.Join(dir, actualFile), []byte(actual), 0o600); err != nil {
		return "", err
	}

	exec := e.Executor
	if exec == nil {
		exec = &shell.OSShell{}
	}

	res, err := exec.Run(ctx, dir, e.Tool+" "+expectedFile+" "+actualFile)
	if err != nil {
		return "", err
	}

	// diff tools exit 1 when the inputs differ.
	if res.ExitCode > 1 || res.Stderr != "" {
		return "", fmt.Errorf("%w: %s exited with code %d: %s", ErrToolFailed, e.Tool, res.ExitCode, res.Stderr)
	}

	return res.Stdout, nil
}

func (e *External) fallback() Renderer {
	if e.Fallback == nil {
		return Unified{}
	}

	return e.Fallback
}
