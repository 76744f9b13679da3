// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package surface models the visual content of the inline input as a tree
// of element, text and widget nodes, and maps logical rune offsets onto
// tree positions.
//
// The tree stands in for whatever a rich-text host actually renders (a
// content-editable subtree, a terminal grid); any host that can deliver the
// equivalent input signals can drive it. Widget nodes are atomic: the
// offset mapper never descends into them, and each one contributes the rune
// length of its stored canonical tag-string to the logical text stream,
// mirroring an atom cell in a rope.
//
// # Key Types
//
//   - Node: one tree node (element, text run, or token pill widget)
//   - Surface: a tree plus its selection and the mutation primitives
//   - Position, Range: text-node-anchored points used for caret handling
//   - Segment: the flattened document model (text runs and token refs)
//
// Offsets throughout are rune offsets into the logical text, where a widget
// contributes its tag-string (e.g. "#file:a.ts"). Mapping failures are
// reported with ok=false, never panics; callers fall back to caret-relative
// behavior.
package surface
