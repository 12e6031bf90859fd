// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// syntaxErrorExitCode is what POSIX shells exit with on a parse error.
const syntaxErrorExitCode = 2

var _ Executor = (*Builtin)(nil)

// Builtin interprets commands with the mvdan.cc/sh POSIX shell interpreter.
// External programs are still started as child processes.
type Builtin struct {
	Env []string // Extra KEY=VALUE pairs appended to os.Environ().
}

// Run implements Executor.
func (b *Builtin) Run(ctx context.Context, dir, command string) (Outcome, error) {
	logger := ctxlog.Logger(ctx).With("executor", BuiltinName)
	logger.Debug("command info", "cwd", dir, "command", command)

	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return Outcome{Stderr: err.Error() + "\n", ExitCode: syntaxErrorExitCode}, nil
	}

	var stdout, stderr bytes.Buffer

	opts := []interp.RunnerOption{
		interp.StdIO(nil, &stdout, &stderr),
		interp.Env(expand.ListEnviron(append(os.Environ(), b.Env...)...)),
	}
	if dir != "" {
		opts = append(opts, interp.Dir(dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return Outcome{ExitCode: -1}, errors.Join(ErrCouldNotStartProcess, err)
	}

	err = runner.Run(ctx, file)

	res := Outcome{}

	status, isStatus := interp.IsExitStatus(err)

	switch {
	case err == nil:
	case isStatus:
		res.ExitCode = int(status)
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Stdout, res.Stderr = stdout.String(), stderr.String()

		return res, errors.Join(ErrKilled, ctx.Err())
	default:
		res.ExitCode = 1

		stderr.WriteString(err.Error() + "\n")
	}

	res.Stdout, res.Stderr = stdout.String(), stderr.String()
	logger.Debug("command finished", "exitCode", res.ExitCode)

	return res, nil
}
