// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrCouldNotStartProcess is returned when the shell could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrKilled is returned when the command was killed because the context was done.
	ErrKilled = errors.New("command killed")
	// ErrShellNotFound is returned when a configured shell cannot be resolved to an executable.
	ErrShellNotFound = errors.New("shell not found")
)

// BuiltinName selects the in-process interpreter wherever a shell path is configured.
const BuiltinName = "builtin"

// Outcome is what a command produced.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs a command line in dir and blocks until it ends.
// A non-zero exit code is not an error; errors mean the command could not be
// run to completion.
type Executor interface {
	Run(ctx context.Context, dir, command string) (Outcome, error)
}

// New returns the executor for a configured shell: the builtin interpreter
// for BuiltinName, otherwise an OSShell. An empty path selects DefaultShell.
func New(shellPath string) Executor {
	if shellPath == BuiltinName {
		return &Builtin{}
	}

	return &OSShell{Path: shellPath}
}

// Resolve turns a configured shell into the executable that will run commands.
// BuiltinName is returned as is, an empty value selects DefaultShell and bare
// names such as "zsh" are searched in PATH.
func Resolve(ctx context.Context, shellPath string) (string, error) {
	if shellPath == BuiltinName {
		return shellPath, nil
	}

	if shellPath == "" {
		shellPath = DefaultShell(ctx)
	}

	path, err := LookPath(shellPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrShellNotFound, err)
	}

	return path, nil
}

// Echo wraps an Executor and writes prefix+command to w before each run.
type Echo struct {
	Executor
	W      io.Writer
	Prefix string
}

// Run implements Executor.
func (e *Echo) Run(ctx context.Context, dir, command string) (Outcome, error) {
	if e.W != nil {
		fmt.Fprintln(e.W, e.Prefix+command) //nolint:errcheck
	}

	return e.Executor.Run(ctx, dir, command)
}
