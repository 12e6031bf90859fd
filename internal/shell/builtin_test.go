// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    Outcome
	}{
		{
			name:    "echo",
			command: "echo A",
			want:    Outcome{Stdout: "A\n"},
		},
		{
			name:    "stderr and exit status",
			command: "echo 'bad arg' >&2; exit 1",
			want:    Outcome{Stderr: "bad arg\n", ExitCode: 1},
		},
		{
			name:    "pipeline builtins",
			command: `x=42; printf 'id:%s\n' "$x"`,
			want:    Outcome{Stdout: "id:42\n"},
		},
		{
			name:    "exit status is kept",
			command: "exit 42",
			want:    Outcome{ExitCode: 42},
		},
		{
			name:    "false",
			command: "false",
			want:    Outcome{ExitCode: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&Builtin{}).Run(context.Background(), "", tt.command)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltin_SyntaxError(t *testing.T) {
	got, err := (&Builtin{}).Run(context.Background(), "", "echo (")
	require.NoError(t, err)
	assert.Equal(t, syntaxErrorExitCode, got.ExitCode)
	assert.NotEmpty(t, got.Stderr)
}

func TestBuiltin_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("content\n"), 0o600))

	got, err := (&Builtin{}).Run(context.Background(), dir, "read line < f.txt; echo \"$line\"")
	require.NoError(t, err)
	assert.Equal(t, "content\n", got.Stdout)
}

func TestBuiltin_Env(t *testing.T) {
	got, err := (&Builtin{Env: []string{"GREETING=hi"}}).Run(context.Background(), "", `echo "$GREETING"`)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", got.Stdout)
}

func TestBuiltin_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Builtin{}).Run(ctx, "", "while true; do :; done")
	require.ErrorIs(t, err, ErrKilled)
}
