// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		target  string
		matched bool
	}{
		{"empty query matches", "", "main.go", true},
		{"prefix", "main", "main.go", true},
		{"subsequence", "mgo", "main.go", true},
		{"out of order fails", "gma", "main.go", false},
		{"query longer than target", "abcdef", "abc", false},
		{"case insensitive", "MAIN", "main.go", true},
		{"no shared characters", "xyz", "main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, matched := fuzzyMatch(tt.query, tt.target)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestFuzzyMatch_ScoringPrefersBoundaries(t *testing.T) {
	// Consecutive prefix match should outscore a scattered match.
	prefix, ok := fuzzyMatch("edit", "editor.go")
	assert.True(t, ok)
	scattered, ok := fuzzyMatch("edit", "extended_audit.go")
	assert.True(t, ok)
	assert.Greater(t, prefix, scattered)
}

func TestHighlightMatch(t *testing.T) {
	assert.Equal(t, []int{0, 1}, HighlightMatch("ma", "main.go"))
	assert.Nil(t, HighlightMatch("", "main.go"))
	assert.Nil(t, HighlightMatch("zz", "main.go"))
}
