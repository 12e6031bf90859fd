// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := map[string]string{
		"test01.in":          "test01",
		"tests/merge.in":     "merge",
		"/abs/a.b.in":        "a",
		"noext":              "noext",
		".in":                "",
		"dir.with.dots/x.in": "x",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Name(in))
		})
	}
}

func newMemFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/t1.in", []byte("< echo hi\nhi\n>>>\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/prog", []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, afero.WriteFile(fs, "/src/single.txt", []byte("single"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/data/f1.txt", []byte("one"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/data/sub/f2.txt", []byte("two"), 0o644))

	return fs
}

func TestPrepare(t *testing.T) {
	fs := newMemFs(t)
	stubs := gostub.Stub(&FS, fs)
	defer stubs.Reset()

	w := New(Options{
		Root:     "/work",
		Program:  "/src/prog",
		Fixtures: []string{"/src/single.txt", "/src/data"},
	})

	wd, err := w.Prepare(context.Background(), "/src/t1.in")
	require.NoError(t, err)

	assert.Equal(t, "t1", wd.Name)
	assert.Equal(t, filepath.Join("/work", "t1"), wd.Dir)
	assert.Equal(t, filepath.Join("/work", "t1", "t1.in"), wd.Script)

	b, err := afero.ReadFile(fs, wd.Script)
	require.NoError(t, err)
	assert.Equal(t, "< echo hi\nhi\n>>>\n", string(b))

	info, err := fs.Stat(filepath.Join(wd.Dir, "prog"))
	require.NoError(t, err)
	assert.Equal(t, 0o755, int(info.Mode().Perm()))

	for file, want := range map[string]string{
		"single.txt":      "single",
		"data/f1.txt":     "one",
		"data/sub/f2.txt": "two",
	} {
		b, err := afero.ReadFile(fs, filepath.Join(wd.Dir, file))
		require.NoError(t, err, file)
		assert.Equal(t, want, string(b), file)
	}

	require.NoError(t, w.Cleanup(context.Background(), wd))

	_, err = fs.Stat(wd.Dir)
	assert.Error(t, err)
}

func TestPrepare_WorkdirExists(t *testing.T) {
	fs := newMemFs(t)
	stubs := gostub.Stub(&FS, fs)
	defer stubs.Reset()

	w := New(Options{Root: "/work"})

	_, err := w.Prepare(context.Background(), "/src/t1.in")
	require.NoError(t, err)

	_, err = w.Prepare(context.Background(), "/src/t1.in")
	require.ErrorIs(t, err, ErrSetup)
	require.ErrorIs(t, err, ErrWorkdirExists)
}

func TestPrepare_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		script  string
		wantErr error
	}{
		{
			name:    "missing program",
			opts:    Options{Root: "/work", Program: "/src/missing"},
			script:  "/src/t1.in",
			wantErr: ErrFixture,
		},
		{
			name:    "missing script",
			opts:    Options{Root: "/work"},
			script:  "/src/none.in",
			wantErr: ErrFileCopy,
		},
		{
			name:    "no name",
			opts:    Options{Root: "/work"},
			script:  "/src/.in",
			wantErr: ErrInvalidScriptName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubs := gostub.Stub(&FS, newMemFs(t))
			defer stubs.Reset()

			_, err := New(tt.opts).Prepare(context.Background(), tt.script)
			require.ErrorIs(t, err, ErrSetup)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPrepare_DefaultRoot(t *testing.T) {
	fs := newMemFs(t)
	stubs := gostub.Stub(&FS, fs)
	defer stubs.Reset()

	wd, err := New(Options{}).Prepare(context.Background(), "/src/t1.in")
	require.NoError(t, err)
	assert.Equal(t, "t1", wd.Dir)

	_, err = fs.Stat(filepath.Join("t1", "t1.in"))
	require.NoError(t, err)
}

func TestRemoteName(t *testing.T) {
	tests := map[string]string{
		"https://example.com/files/data.txt":              "data.txt",
		"https://example.com/files/data.txt?checksum=abc": "data.txt",
		"git::https://github.com/o/r//sub/f.txt?ref=v1":   "f.txt",
		"github.com/o/r//fixtures":                        "fixtures",
		"https://example.com/":                            fetchedName,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, remoteName(in))
		})
	}
}

func TestClose_Empty(t *testing.T) {
	assert.NoError(t, New(Options{}).Close())
}
