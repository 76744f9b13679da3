// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

// =============================================================================
// COMPOSITION GATE
// =============================================================================

// The gate has two states, idle and composing. Between CompositionStart and
// CompositionEnd every input event still updates the raw tree, but logical
// text extraction, owner notification and mention detection are suppressed:
// IME intermediate glyphs are not valid text.
//
// Known limitation, preserved from the original design: a composed word is
// invisible to the mention detector while it is being typed. Detection only
// sees it after the flush at composition end.

// CompositionStart transitions the gate to composing.
func (e *Editor) CompositionStart() {
	e.composing = true
}

// CompositionEnd transitions back to idle and flushes: exactly one
// extraction and owner notification (if the content changed during the
// composition), then mention detection as normal.
func (e *Editor) CompositionEnd() {
	if !e.composing {
		return
	}
	e.composing = false
	if e.dirty {
		e.dirty = false
		e.commit()
		return
	}
	e.detect()
}

// Composing reports whether an IME composition is in progress.
func (e *Editor) Composing() bool {
	return e.composing
}
