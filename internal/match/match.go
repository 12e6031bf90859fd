// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package match

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/matt-FFFFFF/intest/internal/script"
	"github.com/matt-FFFFFF/intest/internal/shell"
)

var (
	// ErrUnexpectedStderr is returned when a command that must not write to stderr did.
	ErrUnexpectedStderr = errors.New("unexpected output on stderr")
	// ErrOutputMismatch is returned when stdout differs from the expected body.
	ErrOutputMismatch = errors.New("unexpected output")
	// ErrRegexNoMatch is returned when the expected pattern does not match at the start of stdout.
	ErrRegexNoMatch = errors.New("output does not match regex")
	// ErrInvalidRegex is returned when the expected pattern does not compile.
	ErrInvalidRegex = errors.New("invalid regex")
	// ErrUnexpectedStdout is returned when a command expected to fail wrote to stdout.
	ErrUnexpectedStdout = errors.New("output should be empty")
	// ErrUnexpectedSuccess is returned when a command expected to fail exited with code 0.
	ErrUnexpectedSuccess = errors.New("command should fail")
	// ErrStderrMismatch is returned when stderr differs from the expected body.
	ErrStderrMismatch = errors.New("unexpected error output")
)

// Result is the outcome of a successful check.
type Result struct {
	// Groups holds capture groups 1..k of a regex expectation, k being the
	// highest group that took part in the match. Groups that did not take part
	// but lie below k are empty strings. It is empty for other expectations.
	Groups []string
}

// Group returns capture group n, counting from 1.
func (r Result) Group(n int) (string, bool) {
	if n < 1 || n > len(r.Groups) {
		return "", false
	}

	return r.Groups[n-1], true
}

// MismatchError reports a difference between expected and actual text.
type MismatchError struct {
	Kind     error
	Expected string
	Actual   string
	// Stdout is set for ErrUnexpectedStderr, where Actual is stderr.
	Stdout string
}

func (e *MismatchError) Error() string {
	return e.Kind.Error()
}

// Unwrap returns the kind sentinel.
func (e *MismatchError) Unwrap() error {
	return e.Kind
}

// Evaluate checks out against exp.
func Evaluate(exp script.Expectation, out shell.Outcome) (Result, error) {
	switch exp.Kind {
	case script.ExactOutput:
		return exact(exp.Body, out)
	case script.RegexOutput:
		return regex(exp.Body, out)
	case script.ExpectedFailure:
		return failure(exp.Body, out)
	}

	return Result{}, fmt.Errorf("unknown expectation kind %s", exp.Kind)
}

func exact(body string, out shell.Outcome) (Result, error) {
	if out.Stderr != "" {
		return Result{}, unexpectedStderr(out)
	}

	if out.Stdout != body {
		return Result{}, &MismatchError{Kind: ErrOutputMismatch, Expected: body, Actual: out.Stdout}
	}

	return Result{}, nil
}

func regex(pattern string, out shell.Outcome) (Result, error) {
	if out.Stderr != "" {
		return Result{}, unexpectedStderr(out)
	}

	re, err := compileAnchored(pattern)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidRegex, err)
	}

	loc := re.FindStringSubmatchIndex(out.Stdout)
	if loc == nil {
		return Result{}, &MismatchError{Kind: ErrRegexNoMatch, Expected: pattern, Actual: out.Stdout}
	}

	last := 0

	for g := 1; g < len(loc)/2; g++ {
		if loc[2*g] >= 0 {
			last = g
		}
	}

	groups := make([]string, last)
	for g := 1; g <= last; g++ {
		if loc[2*g] >= 0 {
			groups[g-1] = out.Stdout[loc[2*g]:loc[2*g+1]]
		}
	}

	return Result{Groups: groups}, nil
}

func failure(body string, out shell.Outcome) (Result, error) {
	if out.Stdout != "" {
		return Result{}, &MismatchError{Kind: ErrUnexpectedStdout, Expected: "", Actual: out.Stdout}
	}

	if out.ExitCode == 0 {
		return Result{}, fmt.Errorf("%w: exit code %d", ErrUnexpectedSuccess, out.ExitCode)
	}

	if out.Stderr != body {
		return Result{}, &MismatchError{Kind: ErrStderrMismatch, Expected: body, Actual: out.Stderr}
	}

	return Result{}, nil
}

func unexpectedStderr(out shell.Outcome) error {
	return &MismatchError{Kind: ErrUnexpectedStderr, Actual: out.Stderr, Stdout: out.Stdout}
}

// compileAnchored compiles pattern so that it only matches at the start of the input.
// The outer group is non-capturing so group numbers are unchanged.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}

	return regexp.Compile(`\A(?:` + pattern + `)`)
}
