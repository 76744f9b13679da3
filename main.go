// pillbox TUI - an inline rich-text composer with context pills.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/pillbox/internal/config"
	"github.com/morganforge/pillbox/internal/draft"
	"github.com/morganforge/pillbox/internal/picker"
	"github.com/morganforge/pillbox/internal/ui/app"
	"github.com/morganforge/pillbox/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("pillbox %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg := config.Global()

	root, err := os.Getwd()
	if err != nil {
		root = "."
	}

	// Candidate sources
	files := picker.NewFileSource(
		root,
		cfg.Picker.MaxDepth,
		cfg.Picker.IgnoreDirs,
		time.Duration(cfg.Picker.WatchDebounceMs)*time.Millisecond,
	)
	if err := files.Watch(); err != nil {
		// Stale listings beat no listings; keep going without the watcher.
		fmt.Fprintf(os.Stderr, "Warning: file watcher unavailable: %v\n", err)
	}
	defer files.Close()

	commands := picker.NewCommandSource(50)
	pick := picker.New(cfg.Picker.MaxResults,
		files,
		picker.NewGitRefSource(picker.DiscoverGitRefs(root)),
		commands,
		picker.NewURLSource(),
	)

	// Draft persistence
	var drafts *draft.Store
	if cfg.Drafts.Enabled {
		if path, err := cfg.DraftDBPath(); err == nil {
			if drafts, err = draft.Open(path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: draft store unavailable: %v\n", err)
			}
		}
	}
	if drafts != nil {
		defer drafts.Close()
	}

	theme := styles.NewTheme()
	model := app.New(cfg, theme, pick, drafts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`pillbox - inline rich-text composer with context pills

Usage:
  pillbox            start the composer in the current directory
  pillbox --version  print version information
  pillbox --help     show this help

Inside the composer:
  @          open the mention picker
  tab/enter  accept the highlighted candidate
  esc        dismiss the picker
  ctrl+c     save the draft and quit`)
}
