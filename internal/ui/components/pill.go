// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/morganforge/pillbox/internal/token"
	"github.com/morganforge/pillbox/internal/ui/styles"
	"github.com/morganforge/pillbox/internal/util"
)

// =============================================================================
// PILL RENDERING
// =============================================================================

// RenderPill renders a token as an atomic inline pill. maxWidth caps the
// rendered cell width so one long path cannot eat the composer line.
func RenderPill(theme *styles.Theme, t token.Token, maxWidth int) string {
	label := t.DisplayName()
	if maxWidth > 4 {
		// Padding eats two cells; keep the label inside the budget.
		label = util.TruncateWidth(label, maxWidth-2)
	}
	return theme.Pill(t.Kind).Render(label)
}
