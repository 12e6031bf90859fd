// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diff

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/intest/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingTool = "intest-no-such-diff-tool"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		tool    string
		want    any
		wantErr error
	}{
		{name: "unified", mode: ModeUnified, want: Unified{}},
		{name: "side by side", mode: ModeSideBySide, want: &SideBySide{}},
		{name: "external", mode: ModeExternal, tool: missingTool, want: &External{}},
		{name: "auto without tool", mode: ModeAuto, tool: missingTool, want: Unified{}},
		{name: "empty mode is auto", mode: "", tool: missingTool, want: Unified{}},
		{name: "unknown", mode: "fancy", wantErr: ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.mode, tt.tool)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestNew_DefaultTool(t *testing.T) {
	r, err := New(ModeExternal, "")
	require.NoError(t, err)

	ext, ok := r.(*External)
	require.True(t, ok)
	assert.Equal(t, DefaultTool, ext.Tool)
}

func TestUnified(t *testing.T) {
	out := Unified{}.Render(context.Background(), "a\nB\nc\n", "a\nA\nc\n")

	assert.Contains(t, out, "--- expected")
	assert.Contains(t, out, "+++ actual")
	assert.Contains(t, out, "-B\n")
	assert.Contains(t, out, "+A\n")
	assert.Contains(t, out, " a\n")
}

func TestUnified_Equal(t *testing.T) {
	assert.Empty(t, Unified{}.Render(context.Background(), "same\n", "same\n"))
}

func TestSideBySide(t *testing.T) {
	out := NewSideBySide().Render(context.Background(), "one\ntwo\n", "one\nthree\nfour\n")

	assert.Contains(t, out, "expected")
	assert.Contains(t, out, "actual")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")
	assert.Contains(t, out, "four")
}

func TestSideBySide_MissingFinalNewline(t *testing.T) {
	out := NewSideBySide().Render(context.Background(), "x\n", "x")
	assert.Contains(t, out, noFinalNewline)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b" + noFinalNewline}, splitLines("a\nb"))
	assert.Equal(t, []string{""}, splitLines("\n"))
}

// fakeExecutor records the command and reads the files the renderer wrote.
type fakeExecutor struct {
	outcome  shell.Outcome
	err      error
	dir      string
	command  string
	expected string
	actual   string
}

func (f *fakeExecutor) Run(_ context.Context, dir, command string) (shell.Outcome, error) {
	f.dir = dir
	f.command = command

	if b, err := os.ReadFile(filepath.Join(dir, expectedFile)); err == nil {
		f.expected = string(b)
	}

	if b, err := os.ReadFile(filepath.Join(dir, actualFile)); err == nil {
		f.actual = string(b)
	}

	return f.outcome, f.err
}

func TestExternal(t *testing.T) {
	fake := &fakeExecutor{outcome: shell.Outcome{Stdout: "rendered\n", ExitCode: 1}}
	ext := NewExternal("sh")
	ext.Executor = fake

	out := ext.Render(context.Background(), "E\n", "A\n")

	assert.Equal(t, "rendered\n", out)
	assert.Equal(t, "sh expected actual", fake.command)
	assert.Equal(t, "E\n", fake.expected)
	assert.Equal(t, "A\n", fake.actual)

	_, err := os.Stat(fake.dir)
	assert.True(t, os.IsNotExist(err), "temp dir should be removed")
}

func TestExternal_Fallback(t *testing.T) {
	want := Unified{}.Render(context.Background(), "E\n", "A\n")

	tests := []struct {
		name string
		tool string
		exec *fakeExecutor
	}{
		{
			name: "tool not installed",
			tool: missingTool,
			exec: &fakeExecutor{},
		},
		{
			name: "tool error exit code",
			tool: "sh",
			exec: &fakeExecutor{outcome: shell.Outcome{ExitCode: 2}},
		},
		{
			name: "tool writes to stderr",
			tool: "sh",
			exec: &fakeExecutor{outcome: shell.Outcome{Stderr: "usage\n", ExitCode: 1}},
		},
		{
			name: "executor error",
			tool: "sh",
			exec: &fakeExecutor{err: shell.ErrCouldNotStartProcess},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := NewExternal(tt.tool)
			ext.Executor = tt.exec

			assert.Equal(t, want, ext.Render(context.Background(), "E\n", "A\n"))
		})
	}
}
