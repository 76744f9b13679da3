// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// FILE SOURCE
// =============================================================================

// FileSource lists workspace files and directories as mention candidates.
// The listing is cached; an fsnotify watcher marks it stale on changes, and
// the next query past the debounce window rebuilds it.
type FileSource struct {
	root     string
	maxDepth int
	ignore   map[string]bool
	debounce time.Duration

	mu        sync.Mutex
	entries   []fileEntry
	stale     bool
	lastEvent time.Time

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
}

type fileEntry struct {
	rel   string
	isDir bool
}

// NewFileSource creates a FileSource rooted at root. ignoreDirs are
// directory base names that the walk skips.
func NewFileSource(root string, maxDepth int, ignoreDirs []string, debounce time.Duration) *FileSource {
	ignore := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FileSource{
		root:     root,
		maxDepth: maxDepth,
		ignore:   ignore,
		debounce: debounce,
		stale:    true,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Watch starts the filesystem watcher. Without it the listing is built once
// and never refreshed, which is still fine for short-lived sessions.
func (fs *FileSource) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	fs.watcher = watcher

	if err := fs.addRecursive(fs.root); err != nil {
		watcher.Close()
		fs.watcher = nil
		return err
	}

	go fs.processEvents()
	return nil
}

// Close stops the watcher and releases resources.
func (fs *FileSource) Close() error {
	fs.cancel()
	if fs.watcher != nil {
		return fs.watcher.Close()
	}
	return nil
}

// addRecursive adds a directory and all its subdirectories to the watch list.
func (fs *FileSource) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			return nil
		}
		if fs.ignore[filepath.Base(path)] && path != fs.root {
			return filepath.SkipDir
		}
		// Non-fatal, continue
		_ = fs.watcher.Add(path)
		return nil
	})
}

// processEvents marks the cache stale on any relevant filesystem event.
func (fs *FileSource) processEvents() {
	defer func() {
		// RELIABILITY: a panicking watcher goroutine must not take the app down
		if r := recover(); r != nil {
			_ = r
		}
	}()

	for {
		select {
		case <-fs.ctx.Done():
			return

		case event, ok := <-fs.watcher.Events:
			if !ok {
				return
			}

			fs.mu.Lock()
			fs.stale = true
			fs.lastEvent = time.Now()
			fs.mu.Unlock()

			// New directories need to join the watch list
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = fs.addRecursive(event.Name)
				}
			}

		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			// Log error (non-fatal)
			_ = err
		}
	}
}

// Candidates returns the cached listing, rebuilding it first when stale and
// past the debounce window.
func (fs *FileSource) Candidates(query string) []Candidate {
	fs.mu.Lock()
	rebuild := fs.stale && (fs.entries == nil || time.Since(fs.lastEvent) >= fs.debounce)
	if rebuild {
		fs.stale = false
	}
	fs.mu.Unlock()

	if rebuild {
		entries := fs.scan()
		fs.mu.Lock()
		fs.entries = entries
		fs.mu.Unlock()
	}

	fs.mu.Lock()
	entries := fs.entries
	fs.mu.Unlock()

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		kind := token.KindFile
		if e.isDir {
			kind = token.KindDirectory
		}
		out = append(out, Candidate{
			Token: token.Token{
				Kind: kind,
				Name: filepath.Base(e.rel),
				Path: e.rel,
			},
			Label:  filepath.Base(e.rel),
			Detail: e.rel,
		})
	}
	return out
}

// scan walks the workspace up to maxDepth, skipping ignored and hidden
// directories.
func (fs *FileSource) scan() []fileEntry {
	var entries []fileEntry

	filepath.Walk(fs.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if path == fs.root {
			return nil
		}

		rel, err := filepath.Rel(fs.root, path)
		if err != nil {
			return nil
		}

		base := filepath.Base(path)
		if info.IsDir() {
			if fs.ignore[base] || strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			if strings.Count(rel, string(filepath.Separator))+1 > fs.maxDepth {
				return filepath.SkipDir
			}
			entries = append(entries, fileEntry{rel: rel, isDir: true})
			return nil
		}

		if strings.HasPrefix(base, ".") {
			return nil
		}
		entries = append(entries, fileEntry{rel: rel, isDir: false})
		return nil
	})

	return entries
}
