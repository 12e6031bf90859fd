// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script turns the lines of a test script into directives.
//
// A script is line oriented. The first characters of a line select the directive:
//
//	<command          run command; following lines up to a terminator are the expectation body
//	>>>               terminator: stdout must equal the body, stderr must be empty
//	>>>*              terminator: the body is a regexp matched at the start of stdout
//	>>>+              terminator: the command must fail with stderr equal to the body
//	D name = value    define a variable, value may be ${N} to take capture group N
//	EF path...        files exist
//	ED path...        directories exist
//	NEF path...       files do not exist
//	# comment
//
// Any other line is skipped.
package script
