// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for pillbox.
//
// This package contains common helper functions used throughout the
// application for rune-safe string manipulation, display-width measurement,
// type conversion, and crash-safe file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, StringWidth: display-cell aware helpers (CJK safe)
//   - SafeSubstring, RuneLen: rune-index based slicing and counting
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
