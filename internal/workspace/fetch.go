// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/intest/internal/ctxlog"
)

// ErrFetch is returned when a remote fixture cannot be downloaded.
var ErrFetch = errors.New("failed to fetch fixture")

const (
	getterForceSeparator = "::"
	getterSubdirSep      = "//"
	fetchedName          = "fixture"
)

// fetch downloads src with go-getter into a temporary directory and returns the
// path of what was downloaded. Each source is fetched once per Workspace.
func (w *Workspace) fetch(ctx context.Context, src string) (string, error) {
	if p, ok := w.fetched[src]; ok {
		return filepath.Join(p, fetchedName), nil
	}

	tmpDir, err := os.MkdirTemp("", "intest-getter-*")
	if err != nil {
		return "", errors.Join(ErrFetch, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		os.RemoveAll(tmpDir) //nolint:errcheck
		return "", errors.Join(ErrFetch, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, fetchedName),
		Pwd:     wd,
		GetMode: getter.ModeAny,
	}

	ctxlog.Debug(ctx, "fetching fixture", "src", src)

	if _, err := cli.Get(ctx, req); err != nil {
		os.RemoveAll(tmpDir) //nolint:errcheck
		return "", errors.Join(ErrFetch, err)
	}

	w.fetched[src] = tmpDir

	return req.Dst, nil
}

// remoteName is the file name a single downloaded file is given in the work directory.
func remoteName(src string) string {
	if i := strings.Index(src, getterForceSeparator); i >= 0 {
		src = src[i+len(getterForceSeparator):]
	}

	if u, err := url.Parse(src); err == nil && u.Path != "" {
		src = u.Path
	} else if i := strings.Index(src, "?"); i >= 0 {
		src = src[:i]
	}

	if i := strings.LastIndex(src, getterSubdirSep); i >= 0 {
		src = src[i+len(getterSubdirSep):]
	}

	name := path.Base(src)
	if name == "." || name == "/" || name == "" {
		return fetchedName
	}

	return name
}
