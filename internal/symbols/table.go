// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package symbols

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
)

// ErrInvalidName is returned when a variable name is not made of [A-Za-z0-9_].
var ErrInvalidName = errors.New("invalid variable name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidName reports whether name is a legal variable name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Lookup resolves variable names.
type Lookup interface {
	Lookup(name string) (string, bool)
}

var _ Lookup = (*Table)(nil)

// Table maps variable names to values. A Table belongs to exactly one script run.
// The zero value is not usable, use NewTable.
type Table struct {
	vars map[string]string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{vars: make(map[string]string)}
}

// Set binds name to value, replacing any earlier binding.
func (t *Table) Set(name, value string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	t.vars[name] = value

	return nil
}

// Lookup returns the value bound to name. Malformed names are never bound.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil || !ValidName(name) {
		return "", false
	}

	v, ok := t.vars[name]

	return v, ok
}

// Len returns the number of bound variables.
func (t *Table) Len() int {
	return len(t.vars)
}

// Names returns the bound names in sorted order.
func (t *Table) Names() []string {
	return slices.Sorted(maps.Keys(t.vars))
}
