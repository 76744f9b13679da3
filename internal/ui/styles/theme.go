// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/morganforge/pillbox/internal/token"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style
	Header    lipgloss.Style

	// ==========================================================================
	// COMPOSER STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	Cursor           lipgloss.Style
	MentionQuery     lipgloss.Style

	// ==========================================================================
	// PILL STYLES
	// ==========================================================================

	pills map[token.Kind]lipgloss.Style

	// ==========================================================================
	// POPUP STYLES
	// ==========================================================================

	PopupBox      lipgloss.Style
	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
	PopupMatch    lipgloss.Style
	PopupDetail   lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Padding(0, 1)

	// Composer
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Cursor = lipgloss.NewStyle().
		Reverse(true)

	t.MentionQuery = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Pills
	pill := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	t.pills = map[token.Kind]lipgloss.Style{
		token.KindFile:            pill.Foreground(PillFileFg).Background(PillFileBg),
		token.KindDirectory:       pill.Foreground(PillFileFg).Background(PillFileBg),
		token.KindImage:           pill.Foreground(PillFileFg).Background(PillFileBg),
		token.KindCodeSnippet:     pill.Foreground(PillSnippetFg).Background(PillSnippetBg),
		token.KindTerminalCommand: pill.Foreground(PillCommandFg).Background(PillCommandBg),
		token.KindGitRef:          pill.Foreground(PillGitFg).Background(PillGitBg),
		token.KindURL:             pill.Foreground(PillURLFg).Background(PillURLBg),
		token.KindMermaidNode:     pill.Foreground(PillMermaidFg).Background(PillMermaidBg),
		token.KindMermaidDiagram:  pill.Foreground(PillMermaidFg).Background(PillMermaidBg),
	}

	// Popup
	t.PopupBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.PopupItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.PopupSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true)

	t.PopupMatch = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.PopupDetail = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// Pill returns the style for a token kind's pill.
func (t *Theme) Pill(kind token.Kind) lipgloss.Style {
	if s, ok := t.pills[kind]; ok {
		return s
	}
	return t.pills[token.KindFile]
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
