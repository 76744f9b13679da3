// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/pillbox/internal/config"
	"github.com/morganforge/pillbox/internal/draft"
	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/token"
	"github.com/morganforge/pillbox/internal/ui/compose"
	"github.com/morganforge/pillbox/internal/ui/styles"
)

func newTestApp(t *testing.T, drafts *draft.Store) *Model {
	t.Helper()
	cfg := config.Default()
	pick := picker.New(cfg.Picker.MaxResults)
	return New(cfg, styles.NewTheme(), pick, drafts)
}

func openTestDrafts(t *testing.T) *draft.Store {
	t.Helper()
	s, err := draft.Open(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestApp_RestoreDraftRebuildsPills(t *testing.T) {
	drafts := openTestDrafts(t)

	tok := token.Token{ID: "t1", Kind: token.KindFile, Name: "main.go", Path: "cmd/main.go"}
	err := drafts.Save(draft.Draft{
		Key:    DraftKey,
		Text:   "review #file:main.go please",
		Tokens: token.List{tok},
	})
	if err != nil {
		t.Fatal(err)
	}

	m := newTestApp(t, drafts)

	if got := m.composer.Value(); got != "review #file:main.go please" {
		t.Errorf("Value = %q, want the saved draft text", got)
	}
	toks := m.composer.Tokens()
	if len(toks) != 1 || toks[0].ID != "t1" {
		t.Errorf("Tokens = %+v, want the saved token as a widget", toks)
	}
}

func TestApp_RestoreDraftWithoutStore(t *testing.T) {
	m := newTestApp(t, nil)
	if got := m.composer.Value(); got != "" {
		t.Errorf("Value = %q, want empty with no draft store", got)
	}
}

func TestApp_SubmitAppendsMessageAndClearsDraft(t *testing.T) {
	drafts := openTestDrafts(t)
	m := newTestApp(t, drafts)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	m.saveDraft()

	m.Update(compose.SubmitMsg{Text: "hello"})

	if len(m.messages) != 1 || m.messages[0].Text != "hello" {
		t.Fatalf("messages = %+v, want the submitted text", m.messages)
	}
	if got := m.composer.Value(); got != "" {
		t.Errorf("composer Value = %q, want empty after submit", got)
	}
	if _, err := drafts.Load(DraftKey); err != draft.ErrNotFound {
		t.Errorf("draft should be deleted after submit, got %v", err)
	}
}

func TestApp_RenderMessageInlinesPills(t *testing.T) {
	m := newTestApp(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	tok := token.Token{ID: "t1", Kind: token.KindFile, Name: "main.go", Path: "cmd/main.go"}
	line := m.renderMessage(Message{
		Text:   "see #file:main.go here",
		Tokens: token.List{tok},
		At:     time.Now(),
	})

	if strings.Contains(line, "#file:main.go") {
		t.Errorf("rendered message still carries the raw tag: %q", line)
	}
	if !strings.Contains(line, "main.go") {
		t.Errorf("rendered message should show the pill label: %q", line)
	}
}

func TestApp_ViewRendersAfterResize(t *testing.T) {
	m := newTestApp(t, nil)

	if got := m.View(); got != "Loading..." {
		t.Errorf("View before resize = %q, want loading placeholder", got)
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if got := m.View(); !strings.Contains(got, "pillbox") {
		t.Errorf("View should contain the header, got %q", got)
	}
}
