// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/morganforge/pillbox/internal/surface"
	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// VALUE RECONCILER
// =============================================================================

// SetValue aligns the surface with an externally supplied logical-text
// value: a programmatic clear, a draft restore, a template fill. Rules:
//
//   - Foreign-mode elements in the tree mean the surface currently belongs
//     to another feature; synchronization is skipped entirely.
//   - Within the sync-skip window after a local edit inbound refreshes are
//     ignored, so a burst cannot clobber typing in progress.
//   - An empty external value clears a non-empty tree.
//   - A differing non-empty value overwrites the tree's text wholesale and
//     moves the caret to the end. Widgets are NOT reconstructed from
//     tag-strings; the owner re-attaches tokens through the insertion API
//     afterward.
//
// Reconciliation is not a committed edit: it never echoes OnChange back at
// the owner whose value it is applying.
func (e *Editor) SetValue(value string) {
	if e.surf.HasForeign() || e.composing {
		return
	}
	if e.now().Before(e.syncSkipUntil) {
		return
	}

	extracted := e.surf.Text()
	if value == extracted {
		e.lastText = value
		return
	}

	if value == "" {
		e.surf.Clear()
	} else {
		e.surf.SetPlainText(value)
	}
	e.lastText = value
	e.detect()
}

// Clear empties the surface unconditionally. Unlike SetValue("") it is not
// subject to the sync-skip window: the owner is discarding the content (a
// submit, a cancel), not echoing state back. No OnChange fires; the owner
// initiated the clear and already knows.
func (e *Editor) Clear() {
	e.surf.Clear()
	e.tokens = nil
	e.lastText = ""
	e.setMention(Inactive)
}

// SetTokens replaces the editor's view of the owner's token list. Widgets
// whose backing token has disappeared are excised together with their
// trailing separator; a dangling token reference is recovered locally, not
// reported as an error.
func (e *Editor) SetTokens(list token.List) {
	e.tokens = list

	dangling := false
	for _, id := range surface.TokenIDs(e.surf.Root()) {
		if !list.Has(id) {
			e.surf.RemoveWidget(id)
			dangling = true
		}
	}
	if dangling {
		e.commit()
	}
}
