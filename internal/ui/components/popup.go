// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/ui/styles"
	"github.com/morganforge/pillbox/internal/util"
)

// =============================================================================
// MENTION POPUP COMPONENT
// =============================================================================

// MentionPopup displays ranked mention candidates above the composer.
type MentionPopup struct {
	candidates []picker.Candidate
	query      string
	selected   int
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewMentionPopup creates a new mention popup.
func NewMentionPopup(theme *styles.Theme) *MentionPopup {
	return &MentionPopup{
		selected:   0,
		maxVisible: 8,
		width:      50,
		theme:      theme,
	}
}

// SetCandidates sets the candidates to display and resets the selection.
// The query is kept so matched characters can be highlighted.
func (p *MentionPopup) SetCandidates(query string, candidates []picker.Candidate) {
	p.query = query
	p.candidates = candidates
	p.selected = 0
}

// Candidates returns the current candidates.
func (p *MentionPopup) Candidates() []picker.Candidate {
	return p.candidates
}

// Selected returns the currently selected candidate, or nil.
func (p *MentionPopup) Selected() *picker.Candidate {
	if p.selected < 0 || p.selected >= len(p.candidates) {
		return nil
	}
	return &p.candidates[p.selected]
}

// Next selects the next candidate, wrapping around.
func (p *MentionPopup) Next() {
	if len(p.candidates) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.candidates)
}

// Prev selects the previous candidate, wrapping around.
func (p *MentionPopup) Prev() {
	if len(p.candidates) == 0 {
		return
	}
	p.selected--
	if p.selected < 0 {
		p.selected = len(p.candidates) - 1
	}
}

// HasCandidates returns true if there are candidates to display.
func (p *MentionPopup) HasCandidates() bool {
	return len(p.candidates) > 0
}

// Clear removes all candidates.
func (p *MentionPopup) Clear() {
	p.candidates = nil
	p.query = ""
	p.selected = 0
}

// SetWidth sets the popup width.
func (p *MentionPopup) SetWidth(width int) {
	p.width = width
}

// SetMaxVisible sets the maximum number of visible rows.
func (p *MentionPopup) SetMaxVisible(max int) {
	p.maxVisible = max
}

// View renders the popup.
func (p *MentionPopup) View() string {
	if len(p.candidates) == 0 {
		return ""
	}

	// Scrolling window centered on the selection
	start := 0
	end := len(p.candidates)

	if len(p.candidates) > p.maxVisible {
		start = p.selected - p.maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + p.maxVisible
		if end > len(p.candidates) {
			end = len(p.candidates)
			start = end - p.maxVisible
			if start < 0 {
				start = 0
			}
		}
	}

	var items []string
	for i := start; i < end; i++ {
		items = append(items, p.renderItem(p.candidates[i], i == p.selected))
	}

	boxStyle := p.theme.PopupBox.
		Width(p.width).
		MaxWidth(p.width)

	return boxStyle.Render(strings.Join(items, "\n"))
}

// renderItem renders a single candidate row.
func (p *MentionPopup) renderItem(c picker.Candidate, isSelected bool) string {
	labelWidth := 20
	label := util.TruncateRunes(c.Label, labelWidth)

	labelStyle := p.theme.PopupItem.Width(labelWidth)
	detailStyle := p.theme.PopupDetail.Width(p.width - labelWidth - 4)

	if isSelected {
		labelStyle = p.theme.PopupSelected.Width(labelWidth)
		detailStyle = detailStyle.Foreground(styles.TextPrimary)
	} else if !isSelected && p.query != "" {
		// Highlight matched characters on unselected rows; the selected
		// row's background already carries the emphasis.
		label = p.highlightLabel(label)
	}

	detail := util.TruncateRunes(c.Detail, p.width-labelWidth-4)

	indicator := " "
	if isSelected {
		indicator = ">"
	}
	indicatorStyle := lipgloss.NewStyle().
		Width(2).
		Foreground(styles.Cyan)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		indicatorStyle.Render(indicator),
		labelStyle.Render(label),
		detailStyle.Render(detail),
	)
}

// highlightLabel styles the characters of label that the query matched.
func (p *MentionPopup) highlightLabel(label string) string {
	positions := picker.HighlightMatch(p.query, label)
	if positions == nil {
		return label
	}

	matched := make(map[int]bool, len(positions))
	for _, pos := range positions {
		matched[pos] = true
	}

	var b strings.Builder
	for i, r := range []rune(label) {
		if matched[i] {
			b.WriteString(p.theme.PopupMatch.Render(string(r)))
		} else {
			b.WriteString(string(r))
		}
	}
	return b.String()
}
