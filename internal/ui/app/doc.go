// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the pillbox demo application: a transcript viewport,
// the composer, the mention popup and draft persistence, assembled into
// one Bubble Tea model.
package app
