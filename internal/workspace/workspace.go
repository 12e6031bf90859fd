// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/spf13/afero"
)

// FS is the filesystem work directories are created on.
// Default is the OS filesystem, but can be replaced with a mock for testing.
var FS = afero.NewOsFs()

var (
	// ErrSetup is returned when a work directory could not be prepared.
	ErrSetup = errors.New("setup error")
	// ErrWorkdirExists is returned when the work directory of a script already exists.
	ErrWorkdirExists = errors.New("working directory already exists")
	// ErrFixture is returned when a fixture or the program under test could not be provided.
	ErrFixture = errors.New("fixture error")
	// ErrInvalidScriptName is returned when no work directory name can be derived from a script path.
	ErrInvalidScriptName = errors.New("invalid script name")
)

const (
	// sevenFiveFive is the file mode for directories created in the work directory.
	sevenFiveFive = 0o755
)

// Options configures a Workspace.
type Options struct {
	// Root is the directory work directories are created in. Default is the current directory.
	Root string
	// Program is the program under test, copied into every work directory. Optional.
	Program string
	// Fixtures are files, directories or go-getter sources copied into every work directory.
	Fixtures []string
}

// Workdir is a provisioned work directory.
type Workdir struct {
	// Name is the script base name up to its first dot.
	Name string
	// Dir is the path of the work directory.
	Dir string
	// Script is the path of the copy of the script inside Dir.
	Script string
}

// Workspace creates and removes work directories.
// A Workspace is not safe for concurrent use.
type Workspace struct {
	opts    Options
	fetched map[string]string
}

// New creates a Workspace.
func New(opts Options) *Workspace {
	if opts.Root == "" {
		opts.Root = "."
	}

	return &Workspace{
		opts:    opts,
		fetched: make(map[string]string),
	}
}

// Name returns the work directory name for a script: its base name up to the first dot.
func Name(script string) string {
	base := filepath.Base(script)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}

	return base
}

// Prepare creates the work directory for script and copies the script,
// the program and the fixtures into it. The directory must not exist.
func (w *Workspace) Prepare(ctx context.Context, script string) (Workdir, error) {
	name := Name(script)
	if name == "" {
		return Workdir{}, fmt.Errorf("%w: %w: %s", ErrSetup, ErrInvalidScriptName, script)
	}

	wd := Workdir{
		Name:   name,
		Dir:    filepath.Join(w.opts.Root, name),
		Script: filepath.Join(w.opts.Root, name, filepath.Base(script)),
	}

	if _, err := FS.Stat(wd.Dir); err == nil {
		return Workdir{}, fmt.Errorf("%w: %w: %s", ErrSetup, ErrWorkdirExists, wd.Dir)
	}

	if err := FS.MkdirAll(wd.Dir, sevenFiveFive); err != nil {
		return Workdir{}, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	ctxlog.Debug(ctx, "created work directory", "dir", wd.Dir)

	if err := copyFile(FS, script, FS, wd.Script); err != nil {
		return wd, fmt.Errorf("%w: copy script: %w", ErrSetup, err)
	}

	if w.opts.Program != "" {
		dst := filepath.Join(wd.Dir, filepath.Base(w.opts.Program))
		if err := copyFile(FS, w.opts.Program, FS, dst); err != nil {
			return wd, fmt.Errorf("%w: %w: program %s: %w", ErrSetup, ErrFixture, w.opts.Program, err)
		}
	}

	for _, src := range w.opts.Fixtures {
		if err := w.provide(ctx, src, wd.Dir); err != nil {
			return wd, fmt.Errorf("%w: %w: %s: %w", ErrSetup, ErrFixture, src, err)
		}
	}

	return wd, nil
}

// Cleanup removes the work directory and everything in it.
func (w *Workspace) Cleanup(ctx context.Context, wd Workdir) error {
	ctxlog.Debug(ctx, "removing work directory", "dir", wd.Dir)
	return FS.RemoveAll(wd.Dir)
}

// Close removes everything fetched for remote fixtures.
func (w *Workspace) Close() error {
	var result error

	for src, dir := range w.fetched {
		if err := os.RemoveAll(dir); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", src, err))
		}

		delete(w.fetched, src)
	}

	return result
}

// provide copies a fixture into dir. Sources that exist on FS are copied as they are,
// anything else is fetched with go-getter.
func (w *Workspace) provide(ctx context.Context, src, dir string) error {
	if info, err := FS.Stat(src); err == nil {
		dst := filepath.Join(dir, filepath.Base(src))
		if info.IsDir() {
			return copyTree(ctx, FS, src, FS, dst)
		}

		return copyFile(FS, src, FS, dst)
	}

	path, err := w.fetch(ctx, src)
	if err != nil {
		return err
	}

	osFs := afero.NewOsFs()

	info, err := osFs.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return copyTree(ctx, osFs, path, FS, dir)
	}

	return copyFile(osFs, path, FS, filepath.Join(dir, remoteName(src)))
}
