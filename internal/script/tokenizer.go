// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnterminatedCommand is returned when the input ends inside a command body.
var ErrUnterminatedCommand = errors.New("command body has no terminator")

// LineReader is the source of script lines, usually a *symbols.Reader so that
// variables are substituted as lines are pulled.
type LineReader interface {
	// ReadLine returns the next line including its newline, or io.EOF.
	ReadLine() (string, error)
	// Line returns the number of the line last returned.
	Line() int
}

// Tokenizer produces directives from a LineReader in a single pass.
// It reads only as far as the directive it returns, which lets the caller
// run each directive before the next lines are read and substituted.
type Tokenizer struct {
	r LineReader
}

// NewTokenizer returns a Tokenizer reading from r.
func NewTokenizer(r LineReader) *Tokenizer {
	return &Tokenizer{r: r}
}

// Next returns the next directive, or io.EOF when the input is exhausted.
func (t *Tokenizer) Next() (Directive, error) {
	for {
		line, err := t.r.ReadLine()
		if err != nil {
			return nil, err
		}

		pos := t.r.Line()
		kind, payload := Classify(line)

		switch kind {
		case KindExecute:
			return t.readExecute(pos, payload)
		case KindDefine:
			return Define{Line: pos, Expr: payload}, nil
		case KindFilesExist:
			return FilesExist{Line: pos, Paths: strings.Fields(payload)}, nil
		case KindDirsExist:
			return DirsExist{Line: pos, Paths: strings.Fields(payload)}, nil
		case KindFilesAbsent:
			return FilesAbsent{Line: pos, Paths: strings.Fields(payload)}, nil
		default:
			continue
		}
	}
}

func (t *Tokenizer) readExecute(pos int, command string) (Directive, error) {
	var body strings.Builder

	for {
		line, err := t.r.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: command %q on line %d", ErrUnterminatedCommand, command, pos)
		}

		if err != nil {
			return nil, err
		}

		if k, ok := terminator(line); ok {
			return Execute{
				Line:    pos,
				Command: command,
				Expect:  Expectation{Kind: k, Body: body.String()},
			}, nil
		}

		body.WriteString(line)
	}
}

// All tokenizes the whole input. It is meant for tools that do not run the
// directives, since no variable bound by a Define can be seen by later lines.
func All(r LineReader) ([]Directive, error) {
	t := NewTokenizer(r)

	var ds []Directive

	for {
		d, err := t.Next()
		if errors.Is(err, io.EOF) {
			return ds, nil
		}

		if err != nil {
			return ds, err
		}

		ds = append(ds, d)
	}
}
