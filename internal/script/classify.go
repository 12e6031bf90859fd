// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import "strings"

const (
	executePrefix     = "<"
	commentPrefix     = "#"
	filesAbsentPrefix = "NEF"
	dirsExistPrefix   = "ED"
	filesExistPrefix  = "EF"
	definePrefix      = "D"

	exactTerminator   = ">>>"
	regexTerminator   = ">>>*"
	failureTerminator = ">>>+"
)

// keywords are checked in order. Several keywords share a leading letter,
// so the longer prefixes must come first.
var keywords = []struct {
	prefix string
	kind   Kind
}{
	{executePrefix, KindExecute},
	{filesAbsentPrefix, KindFilesAbsent},
	{dirsExistPrefix, KindDirsExist},
	{filesExistPrefix, KindFilesExist},
	{definePrefix, KindDefine},
}

// Classify returns the kind of directive a line opens and the payload that
// follows the keyword, trimmed of surrounding white space.
func Classify(line string) (Kind, string) {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
		return KindIgnored, ""
	}

	for _, kw := range keywords {
		if rest, ok := strings.CutPrefix(line, kw.prefix); ok {
			return kw.kind, strings.TrimSpace(rest)
		}
	}

	return KindUnknown, ""
}

// terminator reports whether line closes a command body and which expectation it selects.
func terminator(line string) (ExpectationKind, bool) {
	switch {
	case strings.HasPrefix(line, regexTerminator):
		return RegexOutput, true
	case strings.HasPrefix(line, failureTerminator):
		return ExpectedFailure, true
	case strings.HasPrefix(line, exactTerminator):
		return ExactOutput, true
	}

	return ExactOutput, false
}
