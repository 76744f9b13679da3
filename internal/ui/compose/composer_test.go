// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/token"
	"github.com/morganforge/pillbox/internal/ui/styles"
)

type fixedSource struct {
	cands []picker.Candidate
}

func (s *fixedSource) Candidates(string) []picker.Candidate { return s.cands }

func newTestComposer(t *testing.T, cands ...picker.Candidate) *Model {
	t.Helper()
	pick := picker.New(10, &fixedSource{cands: cands})
	return New(styles.NewTheme(), pick, Options{Placeholder: "Type @ to mention"})
}

func typeString(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func fileCand(name, path string) picker.Candidate {
	return picker.Candidate{
		Token:  token.Token{Kind: token.KindFile, Name: name, Path: path},
		Label:  name,
		Detail: path,
	}
}

func TestComposer_TypingUpdatesValue(t *testing.T) {
	m := newTestComposer(t)
	typeString(m, "hello world")

	if got := m.Value(); got != "hello world" {
		t.Errorf("Value = %q, want %q", got, "hello world")
	}
}

func TestComposer_BackspaceDeletes(t *testing.T) {
	m := newTestComposer(t)
	typeString(m, "hi")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.Value(); got != "h" {
		t.Errorf("Value = %q, want %q", got, "h")
	}
}

func TestComposer_MentionOpensPopup(t *testing.T) {
	m := newTestComposer(t, fileCand("main.go", "cmd/main.go"))
	typeString(m, "see @ma")

	if !m.MentionActive() {
		t.Fatal("mention should be active after typing @ma")
	}
	if m.PopupView() == "" {
		t.Error("popup should render while mention is active")
	}
}

func TestComposer_TabAcceptsCandidate(t *testing.T) {
	m := newTestComposer(t, fileCand("main.go", "cmd/main.go"))
	typeString(m, "see @ma")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if m.MentionActive() {
		t.Error("mention should close after accepting a candidate")
	}
	if got := m.Value(); !strings.Contains(got, "#file:main.go") {
		t.Errorf("Value = %q, want it to contain the inserted tag", got)
	}
	if len(m.Tokens()) != 1 {
		t.Fatalf("Tokens = %d, want 1", len(m.Tokens()))
	}
	if m.Tokens()[0].ID == "" {
		t.Error("accepted token should carry a minted id")
	}
}

func TestComposer_EscClosesMention(t *testing.T) {
	m := newTestComposer(t, fileCand("main.go", "cmd/main.go"))
	typeString(m, "@ma")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.MentionActive() {
		t.Error("mention should close on escape")
	}
	if got := m.Value(); got != "@ma" {
		t.Errorf("Value = %q, closing the popup must not touch the text", got)
	}
}

func TestComposer_EnterSubmits(t *testing.T) {
	m := newTestComposer(t)
	typeString(m, "ship it")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with content should produce a command")
	}

	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want SubmitMsg", cmd())
	}
	if msg.Text != "ship it" {
		t.Errorf("SubmitMsg.Text = %q, want %q", msg.Text, "ship it")
	}
}

func TestComposer_EnterOnEmptyDoesNothing(t *testing.T) {
	m := newTestComposer(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on an empty composer should not submit")
	}
}

func TestComposer_CaretHopsOverPill(t *testing.T) {
	m := newTestComposer(t, fileCand("main.go", "cmd/main.go"))
	typeString(m, "@ma")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	// Layout is now "#file:main.go " with the caret after the separator.
	// The first left lands just after the pill; the second would land
	// inside it and must hop to offset 0 instead.
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})

	caret, ok := m.Editor().Surface().CaretOffset()
	if !ok {
		t.Fatal("caret should be collapsed")
	}
	if caret != 0 {
		t.Errorf("caret = %d, want 0 after hopping over the pill", caret)
	}
}

func TestComposer_ResetClears(t *testing.T) {
	m := newTestComposer(t, fileCand("main.go", "cmd/main.go"))
	typeString(m, "@ma")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Reset()

	if got := m.Value(); got != "" {
		t.Errorf("Value = %q, want empty after reset", got)
	}
	if len(m.Tokens()) != 0 {
		t.Errorf("Tokens = %d, want 0 after reset", len(m.Tokens()))
	}
}

func TestComposer_ViewShowsPlaceholder(t *testing.T) {
	m := newTestComposer(t)
	if got := m.View(); !strings.Contains(got, "Type @ to mention") {
		t.Errorf("empty composer view should show the placeholder, got %q", got)
	}
}

func TestComposer_ViewShowsText(t *testing.T) {
	m := newTestComposer(t)
	typeString(m, "abc")
	if got := m.View(); !strings.Contains(got, "ab") {
		t.Errorf("view should contain typed text, got %q", got)
	}
}
