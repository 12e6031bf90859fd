// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestShell() *OSShell {
	return &OSShell{Path: "/bin/sh", sigCh: make(chan os.Signal, 1)}
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == goosWindows {
		t.Skip("requires a POSIX shell")
	}
}

func TestOSShell_Success(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	out, err := newTestShell().Run(context.Background(), "", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, Outcome{Stdout: "hello\n", Stderr: "", ExitCode: 0}, out)
}

func TestOSShell_StderrAndExitCode(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	out, err := newTestShell().Run(context.Background(), "", "echo bad arg >&2; exit 3")
	require.NoError(t, err, "non-zero exit is not an error")
	assert.Equal(t, "", out.Stdout)
	assert.Equal(t, "bad arg\n", out.Stderr)
	assert.Equal(t, 3, out.ExitCode)
}

func TestOSShell_Dir(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/marker.txt", []byte("x"), 0o600))

	out, err := newTestShell().Run(context.Background(), dir, "ls")
	require.NoError(t, err)
	assert.Equal(t, "marker.txt\n", out.Stdout)
}

func TestOSShell_Env(t *testing.T) {
	skipOnWindows(t)

	s := newTestShell()
	s.Env = []string{"INTEST_TEST_VAR=from-env"}

	out, err := s.Run(context.Background(), "", `printf %s "$INTEST_TEST_VAR"`)
	require.NoError(t, err)
	assert.Equal(t, "from-env", out.Stdout)
}

func TestOSShell_LargeOutput(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	// Larger than a pipe buffer on both streams so the reads must run concurrently with the child.
	out, err := newTestShell().Run(context.Background(), "",
		`i=0; while [ $i -lt 20000 ]; do echo "line $i"; echo "err $i" >&2; i=$((i+1)); done`)
	require.NoError(t, err)
	assert.Equal(t, 20000, strings.Count(out.Stdout, "\n"))
	assert.Equal(t, 20000, strings.Count(out.Stderr, "\n"))
}

func TestOSShell_NotFound(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := &OSShell{Path: "/not/a/real/shell", sigCh: make(chan os.Signal)}
	out, err := s.Run(context.Background(), "", "true")

	require.ErrorIs(t, err, ErrCouldNotStartProcess)
	require.ErrorIs(t, err, ErrShellNotFound)
	assert.Equal(t, -1, out.ExitCode)
}

func TestOSShell_BareName(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	s := newTestShell()
	s.Path = "sh"

	out, err := s.Run(context.Background(), t.TempDir(), "echo hi")
	require.NoError(t, err)
	assert.Equal(t, Outcome{Stdout: "hi\n"}, out)
}

func TestResolve(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	exe := filepath.Join(dir, "mysh")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	t.Setenv("PATH", dir)

	tests := []struct {
		name    string
		shell   string
		envSh   string
		want    string
		wantErr bool
	}{
		{name: "builtin", shell: BuiltinName, want: BuiltinName},
		{name: "bare name", shell: "mysh", want: exe},
		{name: "absolute path", shell: exe, want: exe},
		{name: "empty uses SHELL", envSh: "mysh", want: exe},
		{name: "missing", shell: "zsh-not-installed", wantErr: true},
		{name: "missing absolute", shell: filepath.Join(dir, "nope"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.envSh)

			got, err := Resolve(context.Background(), tt.shell)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrShellNotFound)
				require.ErrorIs(t, err, ErrCommandNotFound)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOSShell_ContextCancelKills(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newTestShell().Run(ctx, "", "exec sleep 30")
	require.ErrorIs(t, err, ErrKilled)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestEcho(t *testing.T) {
	skipOnWindows(t)

	buf := &bytes.Buffer{}
	e := &Echo{Executor: newTestShell(), W: buf, Prefix: "Execute: "}

	out, err := e.Run(context.Background(), "", "echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.Stdout)
	assert.Equal(t, "Execute: echo hi\n", buf.String())
}

func TestNew(t *testing.T) {
	assert.IsType(t, &Builtin{}, New(BuiltinName))
	assert.Equal(t, &OSShell{Path: "/bin/zsh"}, New("/bin/zsh"))
	assert.Equal(t, &OSShell{}, New(""))
}

func TestDefaultShell(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("SHELL", "/bin/zsh")
	assert.Equal(t, "/bin/zsh", DefaultShell(context.Background()))

	t.Setenv("SHELL", "")
	assert.Equal(t, binSh, DefaultShell(context.Background()))
}
