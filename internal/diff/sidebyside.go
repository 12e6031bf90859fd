// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package diff

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// Styles holds the styling of the side-by-side renderer.
type Styles struct {
	Header  lipgloss.Style
	Same    lipgloss.Style
	Changed lipgloss.Style
	Column  lipgloss.Style
}

// NewStyles returns the default side-by-side styling.
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Same: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Changed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Column: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("8")).
			PaddingRight(1).
			MarginRight(1),
	}
}

// SideBySide lays expected and actual out in two columns, aligning equal lines.
type SideBySide struct {
	styles *Styles
}

var _ Renderer = (*SideBySide)(nil)

// NewSideBySide creates a SideBySide renderer with the default styles.
func NewSideBySide() *SideBySide {
	return &SideBySide{styles: NewStyles()}
}

// Render implements Renderer.
func (s *SideBySide) Render(_ context.Context, expected, actual string) string {
	a := splitLines(expected)
	b := splitLines(actual)

	left := []string{s.styles.Header.Render("expected")}
	right := []string{s.styles.Header.Render("actual")}

	m := difflib.NewMatcher(a, b)
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			for i := op.I1; i < op.I2; i++ {
				left = append(left, s.styles.Same.Render(a[i]))
			}

			for j := op.J1; j < op.J2; j++ {
				right = append(right, s.styles.Same.Render(b[j]))
			}

			continue
		}

		// replace, delete and insert: pad the shorter side so rows stay aligned.
		n := max(op.I2-op.I1, op.J2-op.J1)
		for k := range n {
			left = append(left, s.cell(a, op.I1+k, op.I2))
			right = append(right, s.cell(b, op.J1+k, op.J2))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.styles.Column.Render(strings.Join(left, "\n")),
		strings.Join(right, "\n"),
	)
}

func (s *SideBySide) cell(lines []string, i, end int) string {
	if i >= end {
		return ""
	}

	return s.styles.Changed.Render(lines[i])
}

const noFinalNewline = " [no newline]"

// splitLines splits text into lines, making a missing final newline visible.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}

	lines[len(lines)-1] += noFinalNewline

	return lines
}
