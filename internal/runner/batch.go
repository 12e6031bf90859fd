// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/matt-FFFFFF/intest/internal/shell"
	"github.com/matt-FFFFFF/intest/internal/workspace"
	"github.com/spf13/afero"
)

// ErrBatchAborted is returned when a setup error stops the batch.
var ErrBatchAborted = errors.New("batch aborted")

// SetupPolicy decides what a setup error does to the rest of the batch.
type SetupPolicy string

const (
	// SetupAbort stops the batch at the first setup error.
	SetupAbort SetupPolicy = "abort"
	// SetupContinue records the script as failed and goes on with the next one.
	SetupContinue SetupPolicy = "continue"
)

// Provisioner creates and removes work directories.
type Provisioner interface {
	Prepare(ctx context.Context, script string) (workspace.Workdir, error)
	Cleanup(ctx context.Context, wd workspace.Workdir) error
}

var _ Provisioner = (*workspace.Workspace)(nil)

// Result is the outcome of one script.
type Result struct {
	// Script is the path given on the command line.
	Script string
	// Name is the work directory name.
	Name  string
	Dir   string
	State State
	Err   error
	// Setup is true when Err happened before the first directive ran.
	Setup bool
}

// Results is the outcome of a batch, in run order.
type Results []*Result

// Passed returns the number of passed scripts.
func (r Results) Passed() int {
	n := 0

	for _, res := range r {
		if res.State == Passed {
			n++
		}
	}

	return n
}

// Failed returns the number of failed scripts.
func (r Results) Failed() int {
	return len(r) - r.Passed()
}

// HasError returns true if any script did not pass.
func (r Results) HasError() bool {
	return r.Failed() > 0
}

// Batch runs scripts one after another.
type Batch struct {
	Exec      shell.Executor
	Workspace Provisioner
	// Fs is where scripts are read from and assertions are checked. Default is workspace.FS.
	Fs afero.Fs
	// Clear removes each work directory after its script ran, passed or failed.
	Clear        bool
	OnSetupError SetupPolicy
	// Report, if set, is called with each result as soon as the script ends.
	Report func(*Result)
}

// Run runs every script. A failing script does not stop the batch, a setup error
// does unless OnSetupError is SetupContinue.
func (b *Batch) Run(ctx context.Context, scripts []string) (Results, error) {
	results := make(Results, 0, len(scripts))

	for _, s := range scripts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := b.runOne(ctx, s)
		results = append(results, res)

		if b.Report != nil {
			b.Report(res)
		}

		if res.Setup && b.OnSetupError != SetupContinue {
			return results, fmt.Errorf("%w: %w", ErrBatchAborted, res.Err)
		}
	}

	return results, nil
}

func (b *Batch) runOne(ctx context.Context, s string) *Result {
	res := &Result{Script: s, Name: workspace.Name(s), State: Running}

	ctxlog.Info(ctx, "running script", "script", s)

	wd, err := b.Workspace.Prepare(ctx, s)
	res.Dir = wd.Dir

	if err != nil {
		res.State = Failed
		res.Err = err
		res.Setup = true
		b.cleanup(ctx, wd)

		return res
	}

	defer b.cleanup(ctx, wd)

	fs := b.Fs
	if fs == nil {
		fs = workspace.FS
	}

	f, err := fs.Open(wd.Script)
	if err != nil {
		res.State = Failed
		res.Err = fmt.Errorf("%w: %w", workspace.ErrSetup, err)
		res.Setup = true

		return res
	}

	defer f.Close() //nolint:errcheck

	o := NewOrchestrator(b.Exec, fs, wd.Dir)
	_ = o.Run(ctx, f)

	res.State = o.State()
	res.Err = o.Err()

	return res
}

// cleanup removes wd when Clear is set. A work directory that was never created is left alone.
func (b *Batch) cleanup(ctx context.Context, wd workspace.Workdir) {
	if !b.Clear || wd.Dir == "" {
		return
	}

	if err := b.Workspace.Cleanup(ctx, wd); err != nil {
		ctxlog.Warn(ctx, "failed to remove work directory", "dir", wd.Dir, "error", err)
	}
}
