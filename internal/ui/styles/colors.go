// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the pillbox TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - Primary accent, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, mention highlight, popup border
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// PILL COLORS (per token kind)
// =============================================================================

// File and directory pills - Blue tones
var PillFileBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"}
var PillFileFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}

// Code snippet pills - Soft purple tones
var PillSnippetBg = lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#3B3655"}
var PillSnippetFg = lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"}

// Terminal command pills - Emerald tones
var PillCommandBg = lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#064E3B"}
var PillCommandFg = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#A7F3D0"}

// Git ref pills - Amber tones
var PillGitBg = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#78350F"}
var PillGitFg = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FEF3C7"}

// URL pills - Cyan tones
var PillURLBg = lipgloss.AdaptiveColor{Light: "#CFFAFE", Dark: "#164E63"}
var PillURLFg = lipgloss.AdaptiveColor{Light: "#155E75", Dark: "#CFFAFE"}

// Mermaid pills - Pink tones
var PillMermaidBg = lipgloss.AdaptiveColor{Light: "#FCE7F3", Dark: "#831843"}
var PillMermaidFg = lipgloss.AdaptiveColor{Light: "#9D174D", Dark: "#FBCFE8"}
