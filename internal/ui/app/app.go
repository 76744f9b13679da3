// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/pillbox/internal/config"
	"github.com/morganforge/pillbox/internal/draft"
	"github.com/morganforge/pillbox/internal/editor"
	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/token"
	"github.com/morganforge/pillbox/internal/ui/components"
	"github.com/morganforge/pillbox/internal/ui/compose"
	"github.com/morganforge/pillbox/internal/ui/styles"
)

// DraftKey identifies the demo composer's persisted draft.
const DraftKey = "default"

// =============================================================================
// MODEL
// =============================================================================

// Message is one submitted composer payload shown in the transcript.
type Message struct {
	Text   string
	Tokens token.List
	At     time.Time
}

// Model is the top-level Bubble Tea model: a transcript viewport over a
// pill-rendering composer.
type Model struct {
	theme    *styles.Theme
	cfg      *config.Config
	composer *compose.Model
	vp       viewport.Model
	drafts   *draft.Store

	messages []Message
	width    int
	height   int
	ready    bool
}

// New creates the app model. drafts may be nil when persistence is
// disabled.
func New(cfg *config.Config, theme *styles.Theme, pick *picker.Picker, drafts *draft.Store) *Model {
	composer := compose.New(theme, pick, compose.Options{
		Placeholder:  "Type a message, @ to mention",
		PillMaxWidth: cfg.UI.PillMaxWidth,
		PopupWidth:   cfg.UI.PopupWidth,
		PopupMax:     cfg.UI.PopupMaxVisible,
		Editor: editor.Options{
			MentionGrace: time.Duration(cfg.Editor.MentionGraceMs) * time.Millisecond,
			SyncSkip:     time.Duration(cfg.Editor.SyncSkipMs) * time.Millisecond,
		},
	})

	m := &Model{
		theme:    theme,
		cfg:      cfg,
		composer: composer,
		drafts:   drafts,
	}
	m.restoreDraft()
	return m
}

// restoreDraft reloads the persisted composer state, if any. Pills are
// rebuilt through the insertion API: external values never reconstruct
// widgets from tag-strings on their own.
func (m *Model) restoreDraft() {
	if m.drafts == nil {
		return
	}
	d, err := m.drafts.Load(DraftKey)
	if err != nil {
		return
	}

	ed := m.composer.Editor()
	rest := d.Text
	for _, t := range d.Tokens {
		idx := strings.Index(rest, t.Tag())
		if idx < 0 {
			continue
		}
		if idx > 0 {
			ed.InsertText(rest[:idx])
		}
		ed.InsertToken(t)
		// Token insertion supplies the separator the saved text already has.
		rest = strings.TrimPrefix(rest[idx+len(t.Tag()):], " ")
	}
	if rest != "" {
		ed.InsertText(rest)
	}
}

// saveDraft persists the current composer state.
func (m *Model) saveDraft() {
	if m.drafts == nil {
		return
	}
	_ = m.drafts.Save(draft.Draft{
		Key:    DraftKey,
		Text:   m.composer.Value(),
		Tokens: m.composer.Tokens(),
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Init starts the composer tick loop.
func (m *Model) Init() tea.Cmd {
	return m.composer.Init()
}

// Update routes messages to the composer and handles app-level keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.composer.SetWidth(msg.Width - 4)
		m.layoutViewport()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.saveDraft()
			return m, tea.Quit
		}

	case compose.SubmitMsg:
		m.messages = append(m.messages, Message{
			Text:   msg.Text,
			Tokens: msg.Tokens,
			At:     time.Now(),
		})
		m.composer.Reset()
		if m.drafts != nil {
			_ = m.drafts.Delete(DraftKey)
		}
		m.refreshTranscript()
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)

	// Persist the draft as it evolves; cheap at interactive rates.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		m.saveDraft()
	}

	return m, cmd
}

// layoutViewport sizes the transcript to the space above the composer.
func (m *Model) layoutViewport() {
	h := m.height - 6 // header, composer box, status bar
	if h < 1 {
		h = 1
	}
	if !m.ready {
		m.vp = viewport.New(m.width, h)
	} else {
		m.vp.Width = m.width
		m.vp.Height = h
	}
	m.refreshTranscript()
}

// refreshTranscript re-renders the message log into the viewport.
func (m *Model) refreshTranscript() {
	var lines []string
	for _, msg := range m.messages {
		lines = append(lines, m.renderMessage(msg))
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.GotoBottom()
}

// renderMessage renders one transcript entry, pills inline.
func (m *Model) renderMessage(msg Message) string {
	text := msg.Text
	for _, t := range msg.Tokens {
		pill := components.RenderPill(m.theme, t, m.cfg.UI.PillMaxWidth)
		text = strings.Replace(text, t.Tag(), pill, 1)
	}
	stamp := m.theme.ShortcutDesc.Render(msg.At.Format("15:04"))
	return fmt.Sprintf("%s %s", stamp, text)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders header, transcript, popup, composer and status bar.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("pillbox"))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if popup := m.composer.PopupView(); popup != "" {
		b.WriteString(popup)
		b.WriteString("\n")
	}

	b.WriteString(m.composer.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return m.theme.App.Render(b.String())
}

// statusBar renders the shortcut hints.
func (m *Model) statusBar() string {
	hints := []string{
		m.theme.ShortcutKey.Render("@") + m.theme.ShortcutDesc.Render(" mention"),
		m.theme.ShortcutKey.Render("tab") + m.theme.ShortcutDesc.Render(" accept"),
		m.theme.ShortcutKey.Render("esc") + m.theme.ShortcutDesc.Render(" dismiss"),
		m.theme.ShortcutKey.Render("ctrl+c") + m.theme.ShortcutDesc.Render(" quit"),
	}
	bar := strings.Join(hints, "  ")
	return m.theme.StatusBar.Width(m.width).Render(
		lipgloss.PlaceHorizontal(m.width-2, lipgloss.Left, bar),
	)
}
