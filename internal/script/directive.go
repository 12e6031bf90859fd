// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a script line.
type Kind int

const (
	// KindUnknown is a line that matches no keyword. It is skipped.
	KindUnknown Kind = iota
	// KindIgnored is a blank line or a comment.
	KindIgnored
	// KindExecute opens a command: `<command`.
	KindExecute
	// KindDefine binds a variable: `D name = value`.
	KindDefine
	// KindFilesExist asserts regular files exist: `EF path...`.
	KindFilesExist
	// KindDirsExist asserts directories exist: `ED path...`.
	KindDirsExist
	// KindFilesAbsent asserts files do not exist: `NEF path...`.
	KindFilesAbsent
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindIgnored:     "ignored",
	KindExecute:     "execute",
	KindDefine:      "define",
	KindFilesExist:  "files-exist",
	KindDirsExist:   "dirs-exist",
	KindFilesAbsent: "files-absent",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ExpectationKind selects how the output of a command is checked.
// It is chosen by the terminator that closed the command body.
type ExpectationKind int

const (
	// ExactOutput requires stdout to equal the body and stderr to be empty. Terminator `>>>`.
	ExactOutput ExpectationKind = iota
	// RegexOutput matches the body as a regexp at the start of stdout. Terminator `>>>*`.
	RegexOutput
	// ExpectedFailure requires empty stdout, a non-zero exit code and stderr equal to the body. Terminator `>>>+`.
	ExpectedFailure
)

func (k ExpectationKind) String() string {
	switch k {
	case ExactOutput:
		return "exact"
	case RegexOutput:
		return "regex"
	case ExpectedFailure:
		return "failure"
	}

	return "ExpectationKind(" + strconv.Itoa(int(k)) + ")"
}

// Terminator returns the terminator token for the kind.
func (k ExpectationKind) Terminator() string {
	switch k {
	case RegexOutput:
		return regexTerminator
	case ExpectedFailure:
		return failureTerminator
	default:
		return exactTerminator
	}
}

// Expectation is the declared outcome of an Execute directive.
type Expectation struct {
	Kind ExpectationKind
	Body string
}

// Directive is one parsed instruction. Directives are immutable once created.
type Directive interface {
	// Kind returns the directive kind.
	Kind() Kind
	// Pos returns the line number the directive starts on.
	Pos() int
	fmt.Stringer
}

var (
	_ Directive = Execute{}
	_ Directive = Define{}
	_ Directive = FilesExist{}
	_ Directive = DirsExist{}
	_ Directive = FilesAbsent{}
)

// Execute runs Command through the shell and checks its outcome against Expect.
type Execute struct {
	Line    int
	Command string
	Expect  Expectation
}

// Kind implements Directive.
func (Execute) Kind() Kind { return KindExecute }

// Pos implements Directive.
func (d Execute) Pos() int { return d.Line }

func (d Execute) String() string {
	return fmt.Sprintf("%d: %s %q %s %q", d.Line, d.Kind(), d.Command, d.Expect.Kind, d.Expect.Body)
}

// Define binds a variable. Expr is the text after the keyword, `name = value`.
type Define struct {
	Line int
	Expr string
}

// Kind implements Directive.
func (Define) Kind() Kind { return KindDefine }

// Pos implements Directive.
func (d Define) Pos() int { return d.Line }

func (d Define) String() string {
	return fmt.Sprintf("%d: %s %q", d.Line, d.Kind(), d.Expr)
}

// FilesExist asserts every path is an existing regular file.
type FilesExist struct {
	Line  int
	Paths []string
}

// Kind implements Directive.
func (FilesExist) Kind() Kind { return KindFilesExist }

// Pos implements Directive.
func (d FilesExist) Pos() int { return d.Line }

func (d FilesExist) String() string { return pathsString(d.Line, d.Kind(), d.Paths) }

// DirsExist asserts every path is an existing directory.
type DirsExist struct {
	Line  int
	Paths []string
}

// Kind implements Directive.
func (DirsExist) Kind() Kind { return KindDirsExist }

// Pos implements Directive.
func (d DirsExist) Pos() int { return d.Line }

func (d DirsExist) String() string { return pathsString(d.Line, d.Kind(), d.Paths) }

// FilesAbsent asserts no path is an existing regular file.
type FilesAbsent struct {
	Line  int
	Paths []string
}

// Kind implements Directive.
func (FilesAbsent) Kind() Kind { return KindFilesAbsent }

// Pos implements Directive.
func (d FilesAbsent) Pos() int { return d.Line }

func (d FilesAbsent) String() string { return pathsString(d.Line, d.Kind(), d.Paths) }

func pathsString(line int, k Kind, paths []string) string {
	return fmt.Sprintf("%d: %s [%s]", line, k, strings.Join(paths, " "))
}
