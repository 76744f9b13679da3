// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"time"

	"github.com/morganforge/pillbox/internal/surface"
	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// OPTIONS AND CALLBACKS
// =============================================================================

// Default timing windows. Both are deliberately short: the blur grace only
// needs to outlive a picker click stealing focus, and the sync-skip window
// only needs to outlive one inbound refresh burst.
const (
	DefaultMentionGrace = 200 * time.Millisecond
	DefaultSyncSkip     = 100 * time.Millisecond
)

// Options tunes the editor's timed behavior.
type Options struct {
	// MentionGrace is how long an active mention survives after the editor
	// loses focus, so a picker click can still complete the insertion.
	MentionGrace time.Duration

	// SyncSkip is how long after a local edit inbound external-value
	// refreshes are ignored, protecting in-progress typing.
	SyncSkip time.Duration
}

// DefaultOptions returns the standard timing windows.
func DefaultOptions() Options {
	return Options{
		MentionGrace: DefaultMentionGrace,
		SyncSkip:     DefaultSyncSkip,
	}
}

func (o Options) withDefaults() Options {
	if o.MentionGrace <= 0 {
		o.MentionGrace = DefaultMentionGrace
	}
	if o.SyncSkip <= 0 {
		o.SyncSkip = DefaultSyncSkip
	}
	return o
}

// Callbacks is the owner-facing notification contract. Any field may be
// nil; the editor stays locally correct without an owner listening.
type Callbacks struct {
	// OnChange fires after every committed edit with the logical text and
	// the tokens currently referenced by the document, in document order.
	OnChange func(text string, tokens token.List)

	// OnMentionChange fires on every mention state transition.
	OnMentionChange func(state MentionState)

	// OnRemoveToken asks the owner to drop a token from its backing list.
	// The owner updates the list and feeds it back through SetTokens,
	// which is the excision path for anything still dangling.
	OnRemoveToken func(id string)
}

// =============================================================================
// EDITOR
// =============================================================================

// Editor is the synchronization engine: it keeps the logical text, the
// surface tree and the transient mention state consistent across every
// input event. Single-threaded and event-driven; nothing here blocks and
// nothing runs in the background.
type Editor struct {
	surf   *surface.Surface
	tokens token.List
	cb     Callbacks
	opts   Options

	mention   MentionState
	composing bool
	dirty     bool // surface changed while composing
	focused   bool

	lastText      string
	blurDeadline  time.Time
	syncSkipUntil time.Time

	now func() time.Time
}

// New creates an empty editor.
func New(opts Options, cb Callbacks) *Editor {
	return &Editor{
		surf: surface.New(),
		cb:   cb,
		opts: opts.withDefaults(),
		now:  time.Now,
	}
}

// Surface exposes the visual tree for rendering hosts. Hosts must not
// mutate it directly; all mutation goes through the editor's entry points.
func (e *Editor) Surface() *surface.Surface { return e.surf }

// Value returns the logical text as of the last committed edit.
func (e *Editor) Value() string { return e.lastText }

// Tokens returns the tokens currently referenced by the document, in
// document order.
func (e *Editor) Tokens() token.List { return e.presentTokens() }

// Segments returns the ordered document model.
func (e *Editor) Segments() []surface.Segment {
	return surface.Segments(e.surf.Root())
}

// Mention returns the current mention state.
func (e *Editor) Mention() MentionState { return e.mention }

// Focused reports whether the editor currently has focus.
func (e *Editor) Focused() bool { return e.focused }

// =============================================================================
// INPUT EVENTS
// =============================================================================

// InsertText types s at the caret, deleting any selected range first.
func (e *Editor) InsertText(s string) {
	e.cancelBlurGrace()
	removed := e.surf.InsertText(s)
	e.dropTokens(removed)
	e.commit()
}

// DeleteBackward handles a single backspace keypress. When the caret is
// collapsed immediately after a token widget, the entire token is deleted
// atomically; there is no "inside" a token to backspace into. The host must
// suppress its default single-character delete in that case (this function
// always handles the keystroke).
func (e *Editor) DeleteBackward() {
	e.cancelBlurGrace()

	sel := e.surf.Selection()
	if !sel.Collapsed() {
		removed := e.surf.DeleteSelection()
		e.dropTokens(removed)
		e.commit()
		return
	}

	if off, ok := e.surf.CaretOffset(); ok {
		if w := surface.WidgetBefore(e.surf.Root(), off); w != nil {
			e.removeTokenLocally(w.TokenID())
			e.commit()
			return
		}
	}

	e.surf.DeleteBackward()
	e.commit()
}

// SetCaret collapses the selection to the given logical offset and re-runs
// mention detection against the new caret.
func (e *Editor) SetCaret(offset int) {
	e.cancelBlurGrace()
	e.surf.SetCaret(offset)
	if !e.composing {
		e.detect()
	}
}

// SetSelection selects the logical range [start, end). A range selection
// cannot be mid-trigger, so detection short-circuits to inactive.
func (e *Editor) SetSelection(start, end int) {
	e.cancelBlurGrace()
	if start == end {
		e.SetCaret(start)
		return
	}
	e.surf.SelectRange(start, end)
	if !e.composing {
		e.setMention(Inactive)
	}
}

// Focus marks the editor focused and cancels any pending blur grace.
func (e *Editor) Focus() {
	e.focused = true
	e.cancelBlurGrace()
}

// Blur marks the editor unfocused. An active mention is not deactivated
// immediately: a short grace period tolerates a picker click stealing focus
// transiently. The host drives expiry through Tick.
func (e *Editor) Blur() {
	e.focused = false
	if e.mention.Active {
		e.blurDeadline = e.now().Add(e.opts.MentionGrace)
	}
}

// Tick expires timed state. Hosts call it on their own cadence; the editor
// never schedules anything itself.
func (e *Editor) Tick(now time.Time) {
	if !e.blurDeadline.IsZero() && !now.Before(e.blurDeadline) {
		e.blurDeadline = time.Time{}
		if !e.focused {
			e.setMention(Inactive)
		}
	}
}

// cancelBlurGrace resets the pending blur deactivation; any input or focus
// event during the grace window cancels it.
func (e *Editor) cancelBlurGrace() {
	e.blurDeadline = time.Time{}
}

// =============================================================================
// COMMIT PIPELINE
// =============================================================================

// commit runs the post-edit pipeline: logical-text extraction, owner
// notification, then mention detection, in that order. While a composition
// is in progress the whole pipeline is suppressed and flushed once at
// composition end.
func (e *Editor) commit() {
	if e.composing {
		e.dirty = true
		return
	}
	text := e.surf.Text()
	if text != e.lastText {
		e.lastText = text
		e.syncSkipUntil = e.now().Add(e.opts.SyncSkip)
		if e.cb.OnChange != nil {
			e.cb.OnChange(text, e.presentTokens())
		}
	}
	e.detect()
}

// detect recomputes the mention state from the current caret. Runs against
// the just-updated tree, never a stale one: commit always extracts before
// detecting.
func (e *Editor) detect() {
	off, ok := e.surf.CaretOffset()
	if !ok {
		// Non-collapsed selection or unresolvable caret: no mention.
		e.setMention(Inactive)
		return
	}
	e.setMention(DetectMention(e.surf.Text(), off))
}

// setMention stores the state and notifies only on an actual change.
func (e *Editor) setMention(m MentionState) {
	if e.mention.Equal(m) {
		return
	}
	e.mention = m
	if e.cb.OnMentionChange != nil {
		e.cb.OnMentionChange(m)
	}
}

// presentTokens filters the owner token list down to ids referenced by the
// document, in document order.
func (e *Editor) presentTokens() token.List {
	ids := surface.TokenIDs(e.surf.Root())
	out := make(token.List, 0, len(ids))
	for _, id := range ids {
		if t, ok := e.tokens.ByID(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// dropTokens tells the owner about tokens a range delete excised.
func (e *Editor) dropTokens(ids []string) {
	for _, id := range ids {
		e.tokens = e.tokens.Without(id)
		if e.cb.OnRemoveToken != nil {
			e.cb.OnRemoveToken(id)
		}
	}
}

// removeTokenLocally excises a widget and notifies the owner's removal
// path in one step.
func (e *Editor) removeTokenLocally(id string) {
	e.surf.RemoveWidget(id)
	e.tokens = e.tokens.Without(id)
	if e.cb.OnRemoveToken != nil {
		e.cb.OnRemoveToken(id)
	}
}
