// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the synchronization engine of the inline input.
package editor

// =============================================================================
// MENTION STATE
// =============================================================================

// MentionState describes an in-progress @-triggered interaction. While
// active, Query contains no space or newline and StartOffset points at the
// triggering '@' in the current logical text.
type MentionState struct {
	Active      bool
	Query       string
	StartOffset int
}

// Inactive is the zero mention state.
var Inactive = MentionState{}

// Equal reports whether two states are indistinguishable. Change
// notifications fire only when states actually differ, so a keystroke that
// leaves the mention untouched stays silent.
func (m MentionState) Equal(o MentionState) bool {
	return m.Active == o.Active && m.Query == o.Query && m.StartOffset == o.StartOffset
}

// SpanEnd returns the logical offset one past the mention span: the '@'
// plus the query typed so far.
func (m MentionState) SpanEnd() int {
	return m.StartOffset + 1 + len([]rune(m.Query))
}

// =============================================================================
// DETECTION
// =============================================================================

// DetectMention decides whether the caret sits inside an active @-trigger.
// It takes the substring before the caret and scans backward for the last
// '@'; everything between it and the caret is the candidate query. A space
// or newline in the candidate means the '@' is stale (e.g. part of an
// already-completed email-like string) and there is no active mention.
//
// A caret offset outside the text is treated as "no mention"; a
// non-collapsed selection must be short-circuited to inactive by the caller
// before ever reaching this function.
func DetectMention(text string, caret int) MentionState {
	runes := []rune(text)
	if caret < 0 || caret > len(runes) {
		return Inactive
	}

	at := -1
	for i := caret - 1; i >= 0; i-- {
		if runes[i] == '@' {
			at = i
			break
		}
	}
	if at == -1 {
		return Inactive
	}

	query := runes[at+1 : caret]
	for _, r := range query {
		if r == ' ' || r == '\n' {
			return Inactive
		}
	}

	return MentionState{Active: true, Query: string(query), StartOffset: at}
}
