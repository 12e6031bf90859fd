// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/intest/internal/match"
	"github.com/matt-FFFFFF/intest/internal/shell"
	"github.com/matt-FFFFFF/intest/internal/workspace"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	failingScript = "< first\none\n>>>\n< second\ntwo\n>>>\n< third\n>>>\n"
	passingScript = "< hello\nhello\n>>>\nD greeting = hi\n"
)

func batchFs(t *testing.T, scripts map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, src := range scripts {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/src", name), []byte(src), 0o644))
	}

	return fs
}

func batchExec() *fakeExec {
	return &fakeExec{outcomes: map[string]shell.Outcome{
		"first":  {Stdout: "one\n"},
		"second": {Stdout: "not two\n"},
		"hello":  {Stdout: "hello\n"},
	}}
}

func TestBatch_FailureDoesNotStopBatch(t *testing.T) {
	fs := batchFs(t, map[string]string{"fail.in": failingScript, "pass.in": passingScript})
	stubs := gostub.Stub(&workspace.FS, fs)
	defer stubs.Reset()

	exec := batchExec()

	var reported []string

	b := &Batch{
		Exec:      exec,
		Workspace: workspace.New(workspace.Options{Root: "/work"}),
		Report: func(r *Result) {
			reported = append(reported, r.Name+":"+r.State.String())
		},
	}

	results, err := b.Run(context.Background(), []string{"/src/fail.in", "/src/pass.in"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"fail:failed", "pass:passed"}, reported)

	assert.Equal(t, Failed, results[0].State)
	require.ErrorIs(t, results[0].Err, match.ErrOutputMismatch)
	assert.False(t, results[0].Setup)

	var de *DirectiveError

	require.ErrorAs(t, results[0].Err, &de)
	assert.Equal(t, 4, de.Line)

	assert.Equal(t, Passed, results[1].State)
	require.NoError(t, results[1].Err)

	assert.Equal(t, 1, results.Passed())
	assert.Equal(t, 1, results.Failed())
	assert.True(t, results.HasError())

	assert.Equal(t, []string{"first", "second", "hello"}, exec.calls)
	assert.Equal(t, []string{"/work/fail", "/work/fail", "/work/pass"}, exec.dirs)

	// work directories are kept without Clear
	_, err = fs.Stat("/work/fail/fail.in")
	require.NoError(t, err)
}

func TestBatch_Clear(t *testing.T) {
	fs := batchFs(t, map[string]string{"fail.in": failingScript, "pass.in": passingScript})
	stubs := gostub.Stub(&workspace.FS, fs)
	defer stubs.Reset()

	b := &Batch{
		Exec:      batchExec(),
		Workspace: workspace.New(workspace.Options{Root: "/work"}),
		Clear:     true,
	}

	results, err := b.Run(context.Background(), []string{"/src/fail.in", "/src/pass.in"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, dir := range []string{"/work/fail", "/work/pass"} {
		_, err := fs.Stat(dir)
		assert.Error(t, err, dir)
	}
}

func TestBatch_VariablesDoNotLeak(t *testing.T) {
	fs := batchFs(t, map[string]string{
		"a.in": "D v = set\n",
		"b.in": "< echo ${v}\n${v}\n>>>\n",
	})
	stubs := gostub.Stub(&workspace.FS, fs)
	defer stubs.Reset()

	exec := &fakeExec{outcomes: map[string]shell.Outcome{
		"echo ${v}": {Stdout: "${v}\n"},
	}}

	b := &Batch{Exec: exec, Workspace: workspace.New(workspace.Options{Root: "/work"})}

	results, err := b.Run(context.Background(), []string{"/src/a.in", "/src/b.in"})

	require.NoError(t, err)
	assert.Equal(t, 2, results.Passed())
	assert.Equal(t, []string{"echo ${v}"}, exec.calls)
}

func TestBatch_SetupError(t *testing.T) {
	tests := []struct {
		name        string
		policy      SetupPolicy
		wantResults []State
		wantAbort   bool
	}{
		{name: "abort by default", policy: "", wantResults: []State{Passed, Failed}, wantAbort: true},
		{name: "abort", policy: SetupAbort, wantResults: []State{Passed, Failed}, wantAbort: true},
		{name: "continue", policy: SetupContinue, wantResults: []State{Passed, Failed, Passed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := batchFs(t, map[string]string{"pass.in": passingScript, "other.in": passingScript})
			require.NoError(t, fs.MkdirAll("/work/taken", 0o755))
			require.NoError(t, afero.WriteFile(fs, "/src/taken.in", []byte(passingScript), 0o644))

			stubs := gostub.Stub(&workspace.FS, fs)
			defer stubs.Reset()

			b := &Batch{
				Exec:         batchExec(),
				Workspace:    workspace.New(workspace.Options{Root: "/work"}),
				OnSetupError: tt.policy,
				Clear:        true,
			}

			results, err := b.Run(context.Background(), []string{"/src/pass.in", "/src/taken.in", "/src/other.in"})

			if tt.wantAbort {
				require.ErrorIs(t, err, ErrBatchAborted)
				require.ErrorIs(t, err, workspace.ErrWorkdirExists)
			} else {
				require.NoError(t, err)
			}

			states := make([]State, 0, len(results))
			for _, r := range results {
				states = append(states, r.State)
			}

			assert.Equal(t, tt.wantResults, states)
			assert.True(t, results[1].Setup)
			require.ErrorIs(t, results[1].Err, workspace.ErrSetup)

			// a work directory that existed before the run is never removed
			_, err = fs.Stat("/work/taken")
			require.NoError(t, err)
		})
	}
}

func TestBatch_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &Batch{Exec: &fakeExec{}, Workspace: workspace.New(workspace.Options{Root: "/work"})}

	results, err := b.Run(ctx, []string{"/src/a.in"})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestResults_Empty(t *testing.T) {
	var r Results

	assert.Equal(t, 0, r.Passed())
	assert.Equal(t, 0, r.Failed())
	assert.False(t, r.HasError())
}
