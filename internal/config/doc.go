// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for pillbox.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - EditorConfig: Timing windows for the input synchronization engine
//   - PickerConfig: Mention candidate source limits
//   - DraftConfig: Draft persistence settings
//   - UIConfig: Theme and layout settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PILLBOX_*)
//   - ~/.pillbox/config.toml
//   - ~/.pillbox/config.json
//   - Built-in defaults
//
// # Validation
//
// Validation never fails a load: out-of-range values are clamped to their
// valid bounds and unknown enum values fall back to defaults.
package config
