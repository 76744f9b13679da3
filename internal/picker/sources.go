// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// GIT REF SOURCE
// =============================================================================

// GitRefSource offers branch and tag names the app feeds in.
type GitRefSource struct {
	mu   sync.Mutex
	refs []string
}

// NewGitRefSource creates a GitRefSource.
func NewGitRefSource(refs []string) *GitRefSource {
	return &GitRefSource{refs: refs}
}

// SetRefs replaces the ref list.
func (g *GitRefSource) SetRefs(refs []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refs = refs
}

// Candidates implements Source.
func (g *GitRefSource) Candidates(query string) []Candidate {
	g.mu.Lock()
	refs := g.refs
	g.mu.Unlock()

	out := make([]Candidate, 0, len(refs))
	for _, ref := range refs {
		out = append(out, Candidate{
			Token: token.Token{Kind: token.KindGitRef, Ref: ref},
			Label: ref,
		})
	}
	return out
}

// =============================================================================
// COMMAND SOURCE
// =============================================================================

// CommandSource offers recently run terminal commands. Most recent first;
// the list is capped so old commands age out.
type CommandSource struct {
	mu   sync.Mutex
	cmds []commandEntry
	max  int
}

type commandEntry struct {
	command string
	dir     string
}

// NewCommandSource creates a CommandSource holding up to max commands.
func NewCommandSource(max int) *CommandSource {
	if max < 1 {
		max = 1
	}
	return &CommandSource{max: max}
}

// Record adds a command to the front of the history, dropping duplicates.
func (c *CommandSource) Record(command, dir string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.cmds {
		if e.command == command && e.dir == dir {
			c.cmds = append(c.cmds[:i], c.cmds[i+1:]...)
			break
		}
	}

	c.cmds = append([]commandEntry{{command: command, dir: dir}}, c.cmds...)
	if len(c.cmds) > c.max {
		c.cmds = c.cmds[:c.max]
	}
}

// Candidates implements Source.
func (c *CommandSource) Candidates(query string) []Candidate {
	c.mu.Lock()
	cmds := c.cmds
	c.mu.Unlock()

	out := make([]Candidate, 0, len(cmds))
	for _, e := range cmds {
		out = append(out, Candidate{
			Token: token.Token{
				Kind:    token.KindTerminalCommand,
				Command: e.command,
				Dir:     e.dir,
			},
			Label:  e.command,
			Detail: e.dir,
		})
	}
	return out
}

// =============================================================================
// URL SOURCE
// =============================================================================

// URLSource recognizes URL-shaped queries and offers them verbatim, so
// typing @https://example.com/doc gives a pill without any lookup.
type URLSource struct{}

// NewURLSource creates a URLSource.
func NewURLSource() *URLSource {
	return &URLSource{}
}

// Candidates implements Source.
func (u *URLSource) Candidates(query string) []Candidate {
	if !looksLikeURL(query) {
		return nil
	}
	return []Candidate{{
		Token: token.Token{Kind: token.KindURL, URL: query},
		Label: query,
	}}
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// DiscoverGitRefs lists branch and tag names by reading the repo's ref
// files directly; no git binary needed. Returns nil when root is not a
// git repository.
func DiscoverGitRefs(root string) []string {
	gitDir := filepath.Join(root, ".git")
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		return nil
	}

	var refs []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}

	for _, sub := range []string{"refs/heads", "refs/tags"} {
		dir := filepath.Join(gitDir, filepath.FromSlash(sub))
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if rel, err := filepath.Rel(dir, path); err == nil {
				add(filepath.ToSlash(rel))
			}
			return nil
		})
	}

	// Packed refs hold the rest: "<sha> refs/heads/<name>"
	if data, err := os.ReadFile(filepath.Join(gitDir, "packed-refs")); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				continue
			}
			for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
				if strings.HasPrefix(fields[1], prefix) {
					add(strings.TrimPrefix(fields[1], prefix))
				}
			}
		}
	}

	return refs
}
