// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	prefix = "\033["
	suffix = "m"
	reset  = "\033[0m"
)

// Code is an SGR parameter.
type Code int

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground hi-intensity colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled atomic.Bool

func init() {
	enabled.Store(isColorCapable())
}

// Enabled reports whether color output is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled overrides the detected setting, e.g. for a --no-color flag or in tests.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// Sequence returns the escape sequence for the codes, regardless of whether
// color is enabled. Use Colorize for conditional output.
func Sequence(codes ...Code) string {
	sb := strings.Builder{}
	sb.WriteString(prefix)

	for i, c := range codes {
		if i > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(strconv.Itoa(int(c)))
	}

	sb.WriteString(suffix)

	return sb.String()
}

// Colorize wraps str in the codes and a trailing reset.
// It returns str unchanged when color is disabled.
func Colorize(str string, codes ...Code) string {
	if !Enabled() || len(codes) == 0 {
		return str
	}

	return Sequence(codes...) + str + reset
}

// ColorizeLines colorizes each line of str separately so that a prefix added
// to a line by the caller does not inherit the color.
func ColorizeLines(str string, codes ...Code) string {
	if !Enabled() || len(codes) == 0 {
		return str
	}

	lines := strings.SplitAfter(str, "\n")
	sb := strings.Builder{}

	for _, l := range lines {
		body := strings.TrimSuffix(l, "\n")
		if body != "" {
			sb.WriteString(Colorize(body, codes...))
		}

		if len(body) != len(l) {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func isColorCapable() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
