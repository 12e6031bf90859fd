// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/intest/internal/color"
	"github.com/matt-FFFFFF/intest/internal/diff"
	"github.com/matt-FFFFFF/intest/internal/match"
	"github.com/matt-FFFFFF/intest/internal/runner"
	"github.com/matt-FFFFFF/intest/internal/script"
)

const (
	detailIndent = "     "
	rule         = "----------------------------------------"
)

// Reporter writes one line per script to Out and failure details to Err.
type Reporter struct {
	Out  io.Writer
	Err  io.Writer
	Diff diff.Renderer
}

// New creates a Reporter. A nil renderer uses the unified diff.
func New(out, errw io.Writer, r diff.Renderer) *Reporter {
	if r == nil {
		r = diff.Unified{}
	}

	return &Reporter{Out: out, Err: errw, Diff: r}
}

// Result writes the outcome of one script.
func (r *Reporter) Result(ctx context.Context, res *runner.Result) {
	if res.State == runner.Passed {
		fmt.Fprintf(r.Out, "%s Test %s passed.\n", //nolint:errcheck
			color.Colorize("✓", color.FgGreen), color.Colorize(filepath.Base(res.Script), color.Bold, color.FgGreen))

		return
	}

	fmt.Fprintf(r.Out, "%s Test %s failed\n", //nolint:errcheck
		color.Colorize("✗", color.FgRed), color.Colorize(res.Name, color.Bold, color.FgRed))

	if res.Err != nil {
		r.details(ctx, res)
	}
}

// Summary writes the totals of a batch.
func (r *Reporter) Summary(results runner.Results) {
	passed := fmt.Sprintf("%d passed", results.Passed())
	failed := fmt.Sprintf("%d failed", results.Failed())

	if results.Failed() > 0 {
		failed = color.Colorize(failed, color.Bold, color.FgRed)
	}

	if results.Passed() > 0 {
		passed = color.Colorize(passed, color.FgGreen)
	}

	fmt.Fprintf(r.Out, "%s, %s\n", passed, failed) //nolint:errcheck
}

func (r *Reporter) details(ctx context.Context, res *runner.Result) {
	w := r.Err

	if res.Setup {
		fmt.Fprintf(w, "  %s %s\n", color.Colorize("➜ Setup error:", color.FgRed), res.Err) //nolint:errcheck
		return
	}

	fmt.Fprintf(w, "  %s %s\n", color.Colorize("➜ Error:", color.FgRed), res.Err) //nolint:errcheck

	var de *runner.DirectiveError
	if errors.As(res.Err, &de) {
		if ex, ok := de.Directive.(script.Execute); ok {
			fmt.Fprintf(w, "  ➜ Command: %s\n", ex.Command) //nolint:errcheck
		}
	}

	var mm *match.MismatchError
	if !errors.As(res.Err, &mm) {
		return
	}

	switch {
	case errors.Is(mm.Kind, match.ErrUnexpectedStderr):
		section(w, "Output:", mm.Stdout)
		fmt.Fprintf(w, "%s%s\n", detailIndent, color.Colorize(rule, color.Faint)) //nolint:errcheck
		section(w, color.Colorize("Error Output:", color.FgHiRed), mm.Actual)
	case errors.Is(mm.Kind, match.ErrRegexNoMatch):
		section(w, "Pattern:", mm.Expected)
		section(w, "Output:", mm.Actual)
	default:
		section(w, "Diff:", r.Diff.Render(ctx, mm.Expected, mm.Actual))
	}
}

func section(w io.Writer, title, body string) {
	fmt.Fprintf(w, "  ➜ %s\n", title)               //nolint:errcheck
	fmt.Fprint(w, formatOutput(body, detailIndent)) //nolint:errcheck
}

// formatOutput formats multi-line output with proper indentation.
func formatOutput(output, indent string) string {
	if output == "" {
		return ""
	}

	sb := strings.Builder{}
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	sb.Grow(len(output) + len(lines)*(len(indent)+1))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
