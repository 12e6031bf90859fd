// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/matt-FFFFFF/intest/internal/match"
	"github.com/matt-FFFFFF/intest/internal/script"
	"github.com/matt-FFFFFF/intest/internal/shell"
	"github.com/matt-FFFFFF/intest/internal/symbols"
	"github.com/spf13/afero"
)

// State is the state of a script run.
type State int

const (
	// Running is the state until the script ends or a directive fails.
	Running State = iota
	// Passed means every directive succeeded.
	Passed
	// Failed means a directive failed. No further directives are run.
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Orchestrator runs the directives of one script.
// An Orchestrator is used for exactly one script and is not safe for concurrent use.
type Orchestrator struct {
	exec  shell.Executor
	fs    afero.Fs
	dir   string
	vars  *symbols.Table
	last  *match.Result
	state State
	err   error
}

// NewOrchestrator creates an Orchestrator that runs commands with exec in dir and
// checks filesystem assertions on fs relative to dir.
func NewOrchestrator(exec shell.Executor, fs afero.Fs, dir string) *Orchestrator {
	return &Orchestrator{
		exec:  exec,
		fs:    fs,
		dir:   dir,
		vars:  symbols.NewTable(),
		state: Running,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Err returns the failure, or nil unless the state is Failed.
func (o *Orchestrator) Err() error {
	return o.err
}

// Vars returns the variables bound so far.
func (o *Orchestrator) Vars() *symbols.Table {
	return o.vars
}

// Run reads the script from src, substituting variables line by line, and runs
// each directive as soon as it is complete. It returns the failure, if any.
func (o *Orchestrator) Run(ctx context.Context, src io.Reader) error {
	if o.state != Running {
		return o.err
	}

	r := symbols.NewReader(src, o.vars)
	tok := script.NewTokenizer(r)

	for {
		if err := ctx.Err(); err != nil {
			return o.fail(err)
		}

		d, err := tok.Next()
		if errors.Is(err, io.EOF) {
			o.state = Passed
			return nil
		}

		if err != nil {
			if errors.Is(err, script.ErrUnterminatedCommand) {
				err = &DirectiveError{
					Line: r.Line(),
					Kind: script.KindExecute,
					Err:  fmt.Errorf("%w: %w", ErrMalformedDirective, err),
				}
			}

			return o.fail(err)
		}

		if err := o.Step(ctx, d); err != nil {
			return err
		}
	}
}

// Step runs one directive. On failure the state becomes Failed and the error is
// returned as a *DirectiveError.
func (o *Orchestrator) Step(ctx context.Context, d script.Directive) error {
	if o.state != Running {
		return o.err
	}

	ctxlog.Debug(ctx, "running directive", "line", d.Pos(), "kind", d.Kind().String())

	if err := o.dispatch(ctx, d); err != nil {
		return o.fail(&DirectiveError{Line: d.Pos(), Kind: d.Kind(), Directive: d, Err: err})
	}

	return nil
}

func (o *Orchestrator) dispatch(ctx context.Context, d script.Directive) error {
	switch d := d.(type) {
	case script.Execute:
		return o.execute(ctx, d)
	case script.Define:
		return Define(o.vars, d.Expr, o.last)
	case script.FilesExist:
		return filesExist(o.fs, o.dir, d.Paths)
	case script.DirsExist:
		return dirsExist(o.fs, o.dir, d.Paths)
	case script.FilesAbsent:
		return filesAbsent(o.fs, o.dir, d.Paths)
	}

	return fmt.Errorf("%w: unsupported directive %T", ErrMalformedDirective, d)
}

func (o *Orchestrator) execute(ctx context.Context, d script.Execute) error {
	out, err := o.exec.Run(ctx, o.dir, d.Command)
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "command finished",
		"command", d.Command,
		"exit_code", out.ExitCode,
		"stdout_bytes", len(out.Stdout),
		"stderr_bytes", len(out.Stderr),
	)

	res, err := match.Evaluate(d.Expect, out)
	if err != nil {
		return err
	}

	if d.Expect.Kind == script.RegexOutput {
		o.last = &res
	}

	return nil
}

func (o *Orchestrator) fail(err error) error {
	o.state = Failed
	o.err = err

	return err
}
