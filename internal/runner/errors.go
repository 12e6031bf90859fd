// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/intest/internal/script"
)

var (
	// ErrMalformedDirective is returned for a directive that cannot be understood.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrMissingCapture is returned when a Define refers to a capture group that does not exist.
	ErrMissingCapture = errors.New("missing capture group")
	// ErrMissingFileOrDirectory is returned when a file or directory assertion fails.
	ErrMissingFileOrDirectory = errors.New("missing file or directory")
	// ErrUnexpectedFile is returned when a file that must not exist does.
	ErrUnexpectedFile = errors.New("file should not exist")
)

// DirectiveError is a failure of one directive.
type DirectiveError struct {
	// Line is the line the directive starts on.
	Line int
	Kind script.Kind
	// Directive is nil when the directive could not be parsed.
	Directive script.Directive
	Err       error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Kind, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}
