// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/token"
	"github.com/morganforge/pillbox/internal/ui/styles"
)

func testCandidates(labels ...string) []picker.Candidate {
	out := make([]picker.Candidate, 0, len(labels))
	for _, l := range labels {
		out = append(out, picker.Candidate{
			Token: token.Token{Kind: token.KindFile, Name: l, Path: l},
			Label: l,
		})
	}
	return out
}

func TestMentionPopup_Selection(t *testing.T) {
	p := NewMentionPopup(styles.NewTheme())
	p.SetCandidates("", testCandidates("a.go", "b.go", "c.go"))

	if got := p.Selected(); got == nil || got.Label != "a.go" {
		t.Fatalf("Selected = %v, want first candidate", got)
	}

	p.Next()
	if got := p.Selected(); got.Label != "b.go" {
		t.Errorf("after Next, Selected = %q, want b.go", got.Label)
	}

	p.Prev()
	p.Prev()
	if got := p.Selected(); got.Label != "c.go" {
		t.Errorf("Prev should wrap to the last candidate, got %q", got.Label)
	}
}

func TestMentionPopup_SetCandidatesResetsSelection(t *testing.T) {
	p := NewMentionPopup(styles.NewTheme())
	p.SetCandidates("", testCandidates("a.go", "b.go"))
	p.Next()
	p.SetCandidates("", testCandidates("x.go"))

	if got := p.Selected(); got == nil || got.Label != "x.go" {
		t.Errorf("selection should reset on new candidates, got %v", got)
	}
}

func TestMentionPopup_EmptyView(t *testing.T) {
	p := NewMentionPopup(styles.NewTheme())
	if got := p.View(); got != "" {
		t.Errorf("empty popup should render nothing, got %q", got)
	}
	if p.HasCandidates() {
		t.Error("empty popup should report no candidates")
	}
	if p.Selected() != nil {
		t.Error("empty popup should have no selection")
	}
}

func TestMentionPopup_ViewShowsLabels(t *testing.T) {
	p := NewMentionPopup(styles.NewTheme())
	p.SetCandidates("ago", testCandidates("a.go", "b.go"))

	view := p.View()
	if !strings.Contains(view, "b.go") {
		t.Errorf("view should list candidates, got %q", view)
	}
	if !strings.Contains(view, ">") {
		t.Errorf("view should mark the selected row, got %q", view)
	}
}

func TestMentionPopup_ScrollWindow(t *testing.T) {
	p := NewMentionPopup(styles.NewTheme())
	p.SetMaxVisible(3)
	p.SetCandidates("", testCandidates("a.go", "b.go", "c.go", "d.go", "e.go"))

	view := p.View()
	if strings.Contains(view, "e.go") {
		t.Errorf("rows past the window should be hidden, got %q", view)
	}
}

func TestRenderPill_TruncatesLongLabels(t *testing.T) {
	theme := styles.NewTheme()
	tok := token.Token{
		Kind: token.KindFile,
		Name: "a-very-long-file-name-that-expands.generated.go",
	}

	pill := RenderPill(theme, tok, 16)
	if strings.Contains(pill, "expands") {
		t.Errorf("pill should truncate past the width budget, got %q", pill)
	}
}
