// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/matt-FFFFFF/intest/internal/ctxlog"
	"github.com/matt-FFFFFF/intest/internal/signalbroker"
)

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	winSystem32          = "System32"
	cmdExe               = "cmd.exe"
	binSh                = "/bin/sh"
	winSystemRootEnv     = "SystemRoot"
)

var _ Executor = (*OSShell)(nil)

// OSShell runs commands as `<Path> -c <command>` in a child process.
// The child inherits the environment of intest plus Env.
type OSShell struct {
	Path  string         // Shell executable or a name searched in PATH. Empty means DefaultShell.
	Env   []string       // Extra KEY=VALUE pairs appended to os.Environ().
	sigCh chan os.Signal // Signals to forward to the child, allows mocking in test.
}

// Run implements Executor.
func (s *OSShell) Run(ctx context.Context, dir, command string) (Outcome, error) {
	path, err := Resolve(ctx, s.Path)
	if err != nil {
		return Outcome{ExitCode: -1}, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger := ctxlog.Logger(ctx).With("executor", "os", "shell", path)
	logger.Debug("command info", "cwd", dir, "command", command)

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return Outcome{ExitCode: -1}, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return Outcome{ExitCode: -1}, errors.Join(ErrFailedToCreatePipe, err)
	}

	defer rOut.Close() //nolint:errcheck
	defer rErr.Close() //nolint:errcheck

	ps, err := os.StartProcess(path, []string{filepath.Base(path), commandSwitch(), command}, &os.ProcAttr{
		Dir:   dir,
		Env:   append(os.Environ(), s.Env...),
		Files: []*os.File{os.Stdin, wOut, wErr},
	})

	// The child holds its own copies of the write ends.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		return Outcome{ExitCode: -1}, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var stdout, stderr bytes.Buffer

	readers := sync.WaitGroup{}
	readers.Add(2) //nolint:mnd

	go drain(&readers, &stdout, rOut)
	go drain(&readers, &stderr, rErr)

	sigCh := s.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	done := make(chan struct{})
	killed := make(chan error, 1)
	watchdog := sync.WaitGroup{}
	watchdog.Add(1)

	go func() {
		defer watchdog.Done()

		for {
			select {
			case sig := <-sigCh:
				logger.Info("forwarding signal", "signal", sig.String())

				if err := ps.Signal(sig); err != nil {
					logger.Info("failed to send signal", "signal", sig.String(), "error", err)
				}
			case <-ctx.Done():
				logger.Info("context done, killing process")
				killPs(ctx, ps)

				killed <- ctx.Err()

				return
			case <-done:
				return
			}
		}
	}()

	state, waitErr := ps.Wait()

	close(done)
	watchdog.Wait()
	readers.Wait()

	res := Outcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	logger.Debug("process finished", "exitCode", res.ExitCode,
		"stdoutBytes", stdout.Len(), "stderrBytes", stderr.Len())

	select {
	case e := <-killed:
		return res, errors.Join(ErrKilled, e)
	default:
	}

	if waitErr != nil {
		return res, fmt.Errorf("waiting for process: %w", waitErr)
	}

	return res, nil
}

func drain(wg *sync.WaitGroup, dst *bytes.Buffer, r io.Reader) {
	defer wg.Done()

	_, _ = io.Copy(dst, r)
}

// killPs kills the process, ignoring a process that has already exited.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}

func commandSwitch() string {
	if runtime.GOOS == goosWindows {
		return commandSwitchWindows
	}

	return commandSwitchUnix
}

// DefaultShell returns $SHELL, or /bin/sh. On Windows it returns cmd.exe.
func DefaultShell(ctx context.Context) string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if sh := os.Getenv("SHELL"); sh != "" {
		ctxlog.Debug(ctx, "Using SHELL environment variable", "shell", sh)
		return sh
	}

	return binSh
}
