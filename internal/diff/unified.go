// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diff

import (
	"context"

	"github.com/pmezard/go-difflib/difflib"
)

const unifiedContext = 3

// Unified renders a unified diff with go-difflib. It is the fallback renderer.
type Unified struct{}

var _ Renderer = Unified{}

// Render implements Renderer.
func (Unified) Render(_ context.Context, expected, actual string) string {
	if expected == actual {
		return ""
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  unifiedContext,
	}

	s, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "expected:\n" + expected + "\nactual:\n" + actual
	}

	return s
}
