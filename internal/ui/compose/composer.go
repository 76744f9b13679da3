// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/pillbox/internal/editor"
	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/surface"
	"github.com/morganforge/pillbox/internal/token"
	"github.com/morganforge/pillbox/internal/ui/components"
	"github.com/morganforge/pillbox/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SubmitMsg is emitted when the user submits the composer content.
type SubmitMsg struct {
	Text   string
	Tokens token.List
}

// TickMsg drives the editor's deadline timers (blur grace, sync-skip).
type TickMsg time.Time

const tickInterval = 50 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the composer: a single-line pill-rendering input backed by the
// synchronization engine, with a mention popup fed by the picker.
type Model struct {
	theme *styles.Theme
	ed    *editor.Editor
	pick  *picker.Picker
	popup *components.MentionPopup

	placeholder  string
	width        int
	pillMaxWidth int

	// mirrored from the editor's mention callback
	mention editor.MentionState
}

// Options configure the composer.
type Options struct {
	Placeholder  string
	PillMaxWidth int
	PopupWidth   int
	PopupMax     int
	Editor       editor.Options
}

// New creates a composer over the given picker.
func New(theme *styles.Theme, pick *picker.Picker, opts Options) *Model {
	if opts.PillMaxWidth <= 0 {
		opts.PillMaxWidth = 24
	}

	m := &Model{
		theme:        theme,
		pick:         pick,
		popup:        components.NewMentionPopup(theme),
		placeholder:  opts.Placeholder,
		pillMaxWidth: opts.PillMaxWidth,
	}
	if opts.PopupWidth > 0 {
		m.popup.SetWidth(opts.PopupWidth)
	}
	if opts.PopupMax > 0 {
		m.popup.SetMaxVisible(opts.PopupMax)
	}

	m.ed = editor.New(opts.Editor, editor.Callbacks{
		OnMentionChange: m.onMentionChange,
	})
	m.ed.Focus()
	return m
}

// onMentionChange refreshes the popup whenever the mention state moves.
func (m *Model) onMentionChange(state editor.MentionState) {
	m.mention = state
	if !state.Active {
		m.popup.Clear()
		return
	}
	m.popup.SetCandidates(state.Query, m.pick.Query(state.Query))
}

// Editor exposes the underlying editor for host-level reconciliation
// (SetValue / SetTokens from external state).
func (m *Model) Editor() *editor.Editor { return m.ed }

// Value returns the logical text with tag-strings inline.
func (m *Model) Value() string { return m.ed.Value() }

// Tokens returns the tokens currently present in the composer.
func (m *Model) Tokens() token.List { return m.ed.Tokens() }

// MentionActive reports whether the mention popup is in play.
func (m *Model) MentionActive() bool { return m.mention.Active }

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) { m.width = w }

// Reset clears the composer after a submit.
func (m *Model) Reset() {
	m.ed.Clear()
}

// =============================================================================
// UPDATE
// =============================================================================

// Init starts the editor tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles key and tick messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.ed.Tick(time.Time(msg))
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	popupOpen := m.mention.Active && m.popup.HasCandidates()

	switch msg.Type {
	case tea.KeyRunes:
		m.ed.InsertText(string(msg.Runes))

	case tea.KeySpace:
		m.ed.InsertText(" ")

	case tea.KeyBackspace:
		m.ed.DeleteBackward()

	case tea.KeyLeft:
		m.moveCaret(-1)

	case tea.KeyRight:
		m.moveCaret(1)

	case tea.KeyHome, tea.KeyCtrlA:
		m.ed.SetCaret(0)

	case tea.KeyEnd, tea.KeyCtrlE:
		m.ed.SetCaret(m.ed.Surface().Len())

	case tea.KeyUp:
		if popupOpen {
			m.popup.Prev()
		}

	case tea.KeyDown:
		if popupOpen {
			m.popup.Next()
		}

	case tea.KeyTab:
		if popupOpen {
			m.acceptSelected()
		}

	case tea.KeyEnter:
		if popupOpen {
			m.acceptSelected()
			return m, nil
		}
		text, tokens := m.ed.Value(), m.ed.Tokens()
		if text == "" && len(tokens) == 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			return SubmitMsg{Text: text, Tokens: tokens}
		}

	case tea.KeyEsc:
		if m.mention.Active {
			m.ed.CloseMention()
		}
	}

	return m, nil
}

// acceptSelected inserts the popup's selected candidate as a token,
// replacing the typed @-mention.
func (m *Model) acceptSelected() {
	c := m.popup.Selected()
	if c == nil {
		return
	}
	m.ed.InsertTokenReplacingMention(picker.Mint(*c))
}

// moveCaret moves the caret by delta runes, hopping over pills so the
// caret never lands inside one.
func (m *Model) moveCaret(delta int) {
	surf := m.ed.Surface()
	caret, ok := surf.CaretOffset()
	if !ok {
		surf.CaretToEnd()
		return
	}

	target := caret + delta
	if target < 0 {
		target = 0
	}
	if max := surf.Len(); target > max {
		target = max
	}

	// If the target falls strictly inside a token span, jump across it.
	offset := 0
	for _, seg := range surface.Segments(surf.Root()) {
		segLen := len([]rune(seg.Text))
		if seg.Kind == surface.TokenSegment && target > offset && target < offset+segLen {
			if delta < 0 {
				target = offset
			} else {
				target = offset + segLen
			}
			break
		}
		offset += segLen
	}

	m.ed.SetCaret(target)
}
