// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose implements the composer: the pill-rendering input line
// of the pillbox TUI.
//
// The composer is a Bubble Tea model that translates key events into
// editor operations, mirrors the editor's mention state into the picker
// popup, and renders the surface tree as styled text with inline pills.
// Deadline-based editor behavior (blur grace, sync-skip) is driven by a
// recurring TickMsg.
package compose
