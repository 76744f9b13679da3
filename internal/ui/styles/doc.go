// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the pillbox TUI.
//
// The Theme type bundles every lipgloss style the UI uses, detected once
// at startup from the terminal's color capability via termenv. Pills get a
// per-kind style so a file reference and a terminal command read
// differently at a glance.
package styles
