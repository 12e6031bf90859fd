// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package symbols

import "strings"

// Substitute replaces `${name}` references in line with their values from vars.
//
// Scanning stops at the first `$` that is not followed by `{`; the rest of the
// line, that `$` included, is returned as is. An unbound or malformed reference
// is kept verbatim and scanning resumes after its closing `}`. Values are not
// rescanned. There is no escape for a literal `${`.
func Substitute(line string, vars Lookup) string {
	start := strings.IndexByte(line, '$')
	if start == -1 || start+1 >= len(line) || line[start+1] != '{' {
		return line
	}

	end := strings.IndexByte(line[start:], '}')
	if end == -1 {
		return line
	}

	end += start
	rest := Substitute(line[end+1:], vars)

	if vars != nil {
		if v, ok := vars.Lookup(line[start+2 : end]); ok {
			return line[:start] + v + rest
		}
	}

	return line[:end+1] + rest
}
