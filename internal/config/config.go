// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// pillbox.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.pillbox/config.toml
//   - ~/.pillbox/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/pillbox/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete pillbox configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Editor timing windows
	Editor EditorConfig `toml:"editor" json:"editor"`

	// Picker candidate sources
	Picker PickerConfig `toml:"picker" json:"picker"`

	// Draft persistence
	Drafts DraftConfig `toml:"drafts" json:"drafts"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// EditorConfig tunes the synchronization engine's timed behavior.
type EditorConfig struct {
	// MentionGraceMs is how long (milliseconds) an active mention survives
	// losing focus, so a picker click can still complete the insertion.
	// Valid range is 0-2000; values outside are clamped.
	MentionGraceMs int `toml:"mention_grace_ms" json:"mention_grace_ms"`
	// SyncSkipMs is how long (milliseconds) after a local edit inbound
	// external-value refreshes are ignored. Valid range is 0-2000.
	SyncSkipMs int `toml:"sync_skip_ms" json:"sync_skip_ms"`
}

// PickerConfig contains mention picker configuration.
type PickerConfig struct {
	// MaxResults caps how many candidates one query returns.
	MaxResults int `toml:"max_results" json:"max_results"`
	// MaxDepth caps how deep the workspace file walk descends.
	MaxDepth int `toml:"max_depth" json:"max_depth"`
	// IgnoreDirs are directory names skipped by the file walk.
	IgnoreDirs []string `toml:"ignore_dirs" json:"ignore_dirs"`
	// WatchDebounceMs debounces filesystem-change invalidation.
	WatchDebounceMs int `toml:"watch_debounce_ms" json:"watch_debounce_ms"`
}

// DraftConfig contains draft persistence configuration.
type DraftConfig struct {
	// Enabled controls whether drafts are saved at all.
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the SQLite database path (empty = ~/.pillbox/drafts.db).
	Path string `toml:"path" json:"path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// PillMaxWidth caps a pill's rendered width in cells.
	PillMaxWidth int `toml:"pill_max_width" json:"pill_max_width"`
	// PopupMaxVisible is how many picker rows show at once.
	PopupMaxVisible int `toml:"popup_max_visible" json:"popup_max_visible"`
	// PopupWidth is the picker popup width in cells.
	PopupWidth int `toml:"popup_width" json:"popup_width"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Editor: EditorConfig{
			MentionGraceMs: 200,
			SyncSkipMs:     100,
		},
		Picker: PickerConfig{
			MaxResults:      25,
			MaxDepth:        6,
			IgnoreDirs:      []string{".git", "node_modules", "vendor", "target", "dist"},
			WatchDebounceMs: 250,
		},
		Drafts: DraftConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme:           "dark",
			PillMaxWidth:    24,
			PopupMaxVisible: 8,
			PopupWidth:      50,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the pillbox configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".pillbox"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DraftDBPath returns the effective draft database path.
func (c *Config) DraftDBPath() (string, error) {
	if c.Drafts.Path != "" {
		return c.Drafts.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drafts.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last, then validation clamps.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				cfg.Validate()
				return cfg, nil
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				cfg.Validate()
				return cfg, nil
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.Validate()

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path, picking the
// decoder by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	switch filepath.Ext(path) {
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.Validate()
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the TOML config file atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to the given path as TOML.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// VALIDATION
// =============================================================================

// clampInt clamps v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Validate clamps out-of-range values to their valid bounds. Invalid
// configuration never fails the load; a slightly-wrong editor beats no
// editor.
func (c *Config) Validate() {
	c.Editor.MentionGraceMs = clampInt(c.Editor.MentionGraceMs, 0, 2000)
	c.Editor.SyncSkipMs = clampInt(c.Editor.SyncSkipMs, 0, 2000)
	c.Picker.MaxResults = clampInt(c.Picker.MaxResults, 1, 200)
	c.Picker.MaxDepth = clampInt(c.Picker.MaxDepth, 1, 32)
	c.Picker.WatchDebounceMs = clampInt(c.Picker.WatchDebounceMs, 0, 5000)
	c.UI.PillMaxWidth = clampInt(c.UI.PillMaxWidth, 8, 120)
	c.UI.PopupMaxVisible = clampInt(c.UI.PopupMaxVisible, 1, 30)
	c.UI.PopupWidth = clampInt(c.UI.PopupWidth, 20, 200)
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		c.UI.Theme = "dark"
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PILLBOX_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PILLBOX_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("PILLBOX_DRAFTS"); v != "" {
		c.Drafts.Enabled = v == "1" || v == "true"
	}
	if v := os.Getenv("PILLBOX_DRAFT_PATH"); v != "" {
		c.Drafts.Path = v
	}
	if v := os.Getenv("PILLBOX_MENTION_GRACE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Editor.MentionGraceMs = n
		}
	}
	if v := os.Getenv("PILLBOX_SYNC_SKIP_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Editor.SyncSkipMs = n
		}
	}
	if v := os.Getenv("PILLBOX_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Picker.MaxResults = n
		}
	}
}

// =============================================================================
// GLOBAL CONFIG INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
