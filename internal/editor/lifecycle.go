// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/morganforge/pillbox/internal/surface"
	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// TOKEN LIFECYCLE
// =============================================================================

// InsertToken splices a token widget at the caret: any selected range is
// deleted first, the widget goes in followed by a single separating space,
// and the caret lands immediately after that space.
func (e *Editor) InsertToken(t token.Token) {
	e.cancelBlurGrace()
	e.adopt(t)
	removed := e.surf.InsertWidget(t.ID, t.Tag())
	e.dropTokens(removed)
	e.commit()
}

// InsertTokenReplacingMention replaces the active mention span (the '@'
// plus the query typed so far) with the token widget and trailing space.
// When no mention is active, or the span cannot be resolved to tree
// positions (stale offsets after an out-of-band mutation), it falls back to
// plain caret insertion rather than losing the pick. On success the mention
// is deactivated and its change notified.
func (e *Editor) InsertTokenReplacingMention(t token.Token) {
	e.cancelBlurGrace()
	if !e.mention.Active {
		e.InsertToken(t)
		return
	}

	start, end := e.mention.StartOffset, e.mention.SpanEnd()
	if _, ok := surface.Resolve(e.surf.Root(), start, end); !ok {
		// Mapping failure: recover locally, never surface it.
		e.setMention(Inactive)
		e.InsertToken(t)
		return
	}

	e.adopt(t)
	e.dropTokens(e.surf.DeleteRange(start, end))
	removed := e.surf.InsertWidget(t.ID, t.Tag())
	e.dropTokens(removed)
	e.setMention(Inactive)
	e.commit()
}

// CloseMention force-deactivates the mention without inserting anything,
// e.g. when the picker is dismissed with Escape.
func (e *Editor) CloseMention() {
	e.cancelBlurGrace()
	e.setMention(Inactive)
}

// RemoveToken is the external deletion request: the token's widget is
// excised along with the single separating space that follows it, so
// removing a token never leaves a dangling double space.
func (e *Editor) RemoveToken(id string) {
	if !e.surf.RemoveWidget(id) {
		return
	}
	e.tokens = e.tokens.Without(id)
	e.commit()
}

// adopt records a token handed to us through the imperative API so
// presentTokens can resolve its id even before the owner re-syncs its list.
func (e *Editor) adopt(t token.Token) {
	if !e.tokens.Has(t.ID) {
		e.tokens = append(e.tokens, t)
	}
}
