// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/pillbox/internal/surface"
	"github.com/morganforge/pillbox/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the composer line: plain text, pills, and the caret.
func (m *Model) View() string {
	content := m.renderLine()

	container := m.theme.InputContainer
	if m.width > 0 {
		container = container.Width(m.width)
	}

	return container.Render(
		lipgloss.JoinHorizontal(lipgloss.Left,
			m.theme.InputPrompt.Render("> "),
			content,
		),
	)
}

// PopupView renders the mention popup, or "" when inactive. The host
// decides where to place it relative to the composer.
func (m *Model) PopupView() string {
	if !m.mention.Active {
		return ""
	}
	return m.popup.View()
}

// renderLine walks the segments, styling text, pills and the caret.
func (m *Model) renderLine() string {
	surf := m.ed.Surface()
	segs := surface.Segments(surf.Root())
	caret, caretOK := surf.CaretOffset()

	if len(segs) == 0 || (len(segs) == 1 && segs[0].Text == "") {
		var b strings.Builder
		if caretOK {
			b.WriteString(m.theme.Cursor.Render(" "))
		}
		if m.placeholder != "" {
			b.WriteString(m.theme.InputPlaceholder.Render(m.placeholder))
		}
		return b.String()
	}

	tokens := m.ed.Tokens()
	mentionStart, mentionEnd := -1, -1
	if m.mention.Active {
		mentionStart = m.mention.StartOffset
		mentionEnd = m.mention.SpanEnd()
	}

	var b strings.Builder
	offset := 0
	caretDrawn := false

	for _, seg := range segs {
		segRunes := []rune(seg.Text)

		if seg.Kind == surface.TokenSegment {
			if caretOK && caret == offset {
				b.WriteString(m.theme.Cursor.Render(" "))
				caretDrawn = true
			}
			if t, ok := tokens.ByID(seg.TokenID); ok {
				b.WriteString(components.RenderPill(m.theme, t, m.pillMaxWidth))
			}
			offset += len(segRunes)
			continue
		}

		for i, r := range segRunes {
			pos := offset + i
			switch {
			case caretOK && pos == caret:
				b.WriteString(m.theme.Cursor.Render(string(r)))
				caretDrawn = true
			case pos >= mentionStart && pos < mentionEnd:
				b.WriteString(m.theme.MentionQuery.Render(string(r)))
			default:
				b.WriteString(m.theme.InputText.Render(string(r)))
			}
		}
		offset += len(segRunes)
	}

	// Caret past the last character
	if caretOK && !caretDrawn {
		b.WriteString(m.theme.Cursor.Render(" "))
	}

	return b.String()
}
