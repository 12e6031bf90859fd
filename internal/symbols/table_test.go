// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"x", true},
		{"commit_ID_2", true},
		{"10", true},
		{"", false},
		{"a-b", false},
		{"a b", false},
		{"naïve", false},
		{"x}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.name))
		})
	}
}

func TestTable_SetLookup(t *testing.T) {
	tbl := NewTable()

	_, ok := tbl.Lookup("x")
	assert.False(t, ok)

	require.NoError(t, tbl.Set("x", "V"))
	v, ok := tbl.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "V", v)

	require.NoError(t, tbl.Set("x", "W"))
	v, _ = tbl.Lookup("x")
	assert.Equal(t, "W", v, "later binding overwrites")

	err := tbl.Set("bad name", "v")
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_Names(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Set("b", "2"))
	require.NoError(t, tbl.Set("a", "1"))
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestTable_NilLookup(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Lookup("x")
	assert.False(t, ok)
}
