// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package symbols

import (
	"bufio"
	"errors"
	"io"
)

// Reader reads lines and substitutes variables in each line at the moment it is read,
// so a binding made while processing line n is visible from line n+1 on.
type Reader struct {
	br   *bufio.Reader
	vars Lookup
	line int
}

// NewReader returns a Reader that substitutes against vars.
func NewReader(r io.Reader, vars Lookup) *Reader {
	return &Reader{br: bufio.NewReader(r), vars: vars}
}

// ReadLine returns the next line, including its trailing newline if present.
// It returns io.EOF once no data remains.
func (r *Reader) ReadLine() (string, error) {
	s, err := r.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	if s == "" {
		return "", io.EOF
	}

	r.line++

	return Substitute(s, r.vars), nil
}

// Line returns the number of the line last returned by ReadLine, starting at 1.
func (r *Reader) Line() int {
	return r.line
}
