// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/intest/internal/shell"
)

// ErrUnknownMode is returned by New for an unrecognised mode.
var ErrUnknownMode = errors.New("unknown diff mode")

// Mode selects a Renderer.
type Mode string

const (
	// ModeAuto uses the external tool when it is installed, otherwise the unified diff.
	ModeAuto Mode = "auto"
	// ModeUnified is the plain unified diff.
	ModeUnified Mode = "unified"
	// ModeSideBySide lays expected and actual out in two columns.
	ModeSideBySide Mode = "side-by-side"
	// ModeExternal runs an external diff tool.
	ModeExternal Mode = "external"
)

// DefaultTool is the external diff tool used when none is configured.
const DefaultTool = "icdiff"

// Modes lists the valid modes.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeUnified), string(ModeSideBySide), string(ModeExternal)}
}

// Renderer formats expected against actual.
type Renderer interface {
	Render(ctx context.Context, expected, actual string) string
}

// New returns the renderer for mode. tool is the external diff tool and
// defaults to DefaultTool. An empty mode is ModeAuto.
func New(mode Mode, tool string) (Renderer, error) {
	if tool == "" {
		tool = DefaultTool
	}

	switch mode {
	case ModeAuto, "":
		if _, err := shell.LookPath(tool); err == nil {
			return NewExternal(tool), nil
		}

		return Unified{}, nil
	case ModeUnified:
		return Unified{}, nil
	case ModeSideBySide:
		return NewSideBySide(), nil
	case ModeExternal:
		return NewExternal(tool), nil
	}

	return nil, fmt.Errorf("%w: %q, want one of %s", ErrUnknownMode, mode, strings.Join(Modes(), ", "))
}
