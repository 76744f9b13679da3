// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the synchronization engine of the inline
// token-pill input.
//
// The engine keeps three representations consistent at all times: the
// logical text the rest of the application sees (plain text with
// "#kind:value" tag-strings standing in for tokens), the visual surface
// tree (text runs interleaved with atomic pill widgets), and the transient
// mention state (whether the user is mid-typing an @-trigger, the query
// typed so far, and where it started).
//
// # Control Flow
//
// Host input event -> composition gate (pass-through unless composing) ->
// surface mutation -> logical-text extraction -> OnChange -> mention
// detection -> OnMentionChange. Within one event extraction always happens
// before detection, and detection always reflects that event's resulting
// tree, never a stale one.
//
// # Error Handling
//
// There are no fatal errors here. Mapping failures fall back to
// caret-relative insertion; dangling token references are excised on the
// next reconciliation pass; a missing selection reads as "no mention" or
// "append at end". A broken inline editor is worse than a slightly-wrong
// one, so every failure mode degrades to a safe, visible, locally-correct
// state.
//
// # Concurrency
//
// Single-threaded and cooperative: the surface is exclusively owned by one
// editor instance and all mutation happens synchronously inside a single
// event handler. The only timed behavior (blur grace, sync-skip window) is
// deadline-based and driven by the host through Tick.
package editor
