// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import "testing"

// =============================================================================
// DETECTOR TESTS
// =============================================================================

func TestDetectMention(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int
		want  MentionState
	}{
		{"basic", "hello @wor", 10, MentionState{Active: true, Query: "wor", StartOffset: 6}},
		{"space terminates", "hello @foo bar", 14, Inactive},
		{"newline terminates", "hello @foo\nbar", 14, Inactive},
		{"empty document", "", 0, Inactive},
		{"caret at zero", "@abc", 0, Inactive},
		{"bare at", "@", 1, MentionState{Active: true, Query: "", StartOffset: 0}},
		{"nearest at wins", "a@b c@de", 8, MentionState{Active: true, Query: "de", StartOffset: 5}},
		{"email-like is stale", "mail me@example.com now", 23, Inactive},
		{"caret mid-query", "hey @query", 7, MentionState{Active: true, Query: "qu", StartOffset: 4}},
		{"caret out of range", "abc", 9, Inactive},
		{"negative caret", "abc", -1, Inactive},
		{"cjk query", "見て @日本", 6, MentionState{Active: true, Query: "日本", StartOffset: 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectMention(tc.text, tc.caret)
			if !got.Equal(tc.want) {
				t.Errorf("DetectMention(%q, %d) = %+v, want %+v", tc.text, tc.caret, got, tc.want)
			}
		})
	}
}

func TestMentionState_SpanEnd(t *testing.T) {
	m := MentionState{Active: true, Query: "abc", StartOffset: 4}
	if got := m.SpanEnd(); got != 8 {
		t.Errorf("SpanEnd() = %d, want 8", got)
	}
	// Rune counting, not bytes.
	cjk := MentionState{Active: true, Query: "日本", StartOffset: 0}
	if got := cjk.SpanEnd(); got != 3 {
		t.Errorf("SpanEnd() = %d, want 3", got)
	}
}
