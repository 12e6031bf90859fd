// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/intest/internal/match"
	"github.com/matt-FFFFFF/intest/internal/symbols"
)

var captureRef = regexp.MustCompile(`^\$\{([0-9]+)\}$`)

// Define evaluates `name = value` and binds name in vars.
// A value of the form ${N} is replaced by capture group N of last,
// which is nil when no regex has matched yet in this script.
func Define(vars *symbols.Table, expr string, last *match.Result) error {
	name, value, ok := strings.Cut(expr, "=")
	if !ok {
		return fmt.Errorf("%w: expected name = value, got %q", ErrMalformedDirective, expr)
	}

	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	if !symbols.ValidName(name) {
		return fmt.Errorf("%w: invalid variable name %q", ErrMalformedDirective, name)
	}

	if m := captureRef.FindStringSubmatch(value); m != nil {
		g, err := capture(m[1], last)
		if err != nil {
			return err
		}

		value = g
	}

	return vars.Set(name, value)
}

func capture(digits string, last *match.Result) (string, error) {
	if last == nil {
		return "", fmt.Errorf("%w: ${%s} used before any regex match", ErrMissingCapture, digits)
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", fmt.Errorf("%w: ${%s}: %w", ErrMissingCapture, digits, err)
	}

	g, ok := last.Group(n)
	if !ok {
		return "", fmt.Errorf("%w: ${%d}, last match has %d groups", ErrMissingCapture, n, len(last.Groups))
	}

	return g, nil
}
