// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package token defines the closed set of context token kinds and their
// string encodings.
package token

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/morganforge/pillbox/internal/util"
)

// =============================================================================
// TOKEN KINDS
// =============================================================================

// Kind identifies the type of a context token.
type Kind int

const (
	KindFile            Kind = iota // a file reference
	KindDirectory                   // a directory reference
	KindCodeSnippet                 // a line range inside a file
	KindImage                       // an image attachment
	KindTerminalCommand             // a shell command, optionally with a working dir
	KindGitRef                      // a commit, branch or tag
	KindURL                         // a web address
	KindMermaidNode                 // a single node in a mermaid diagram
	KindMermaidDiagram              // a whole mermaid diagram
)

// String returns the canonical name of the kind as used in tag-strings.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindCodeSnippet:
		return "code-snippet"
	case KindImage:
		return "image"
	case KindTerminalCommand:
		return "terminal-command"
	case KindGitRef:
		return "git-ref"
	case KindURL:
		return "url"
	case KindMermaidNode:
		return "mermaid-node"
	case KindMermaidDiagram:
		return "mermaid-diagram"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= KindFile && k <= KindMermaidDiagram
}

// ParseKind maps a kind name back to its Kind. Returns ok=false for names
// outside the closed set.
func ParseKind(name string) (Kind, bool) {
	for k := KindFile; k <= KindMermaidDiagram; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the kind by its canonical name so persisted drafts
// stay readable and survive reordering of the enum.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a canonical kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown token kind %q", name)
	}
	*k = parsed
	return nil
}

// =============================================================================
// TOKEN
// =============================================================================

// Token is one inline context reference. Tokens are immutable value objects:
// the editor never mutates a token's payload, only its presence in the
// document. The ID is assigned by the owner before insertion and is the only
// field the synchronization engine keys on.
type Token struct {
	// Identity
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// File, directory and image payload
	Path string `json:"path,omitempty"`
	Name string `json:"name,omitempty"`

	// Code snippet payload (1-based, inclusive)
	StartLine int `json:"start_line,omitempty"`
	EndLine   int `json:"end_line,omitempty"`

	// Terminal command payload
	Command string `json:"command,omitempty"`
	Dir     string `json:"dir,omitempty"`

	// Git ref payload
	Ref string `json:"ref,omitempty"`

	// URL payload
	URL string `json:"url,omitempty"`

	// Mermaid payload
	NodeID  string `json:"node_id,omitempty"`
	Diagram string `json:"diagram,omitempty"`
}

// value returns the kind-specific value half of the tag-string.
func (t Token) value() string {
	switch t.Kind {
	case KindFile, KindDirectory, KindImage:
		if t.Name != "" {
			return t.Name
		}
		return t.Path
	case KindCodeSnippet:
		return t.Name + ":" + util.IntToStr(t.StartLine) + "-" + util.IntToStr(t.EndLine)
	case KindTerminalCommand:
		return t.Command
	case KindGitRef:
		return t.Ref
	case KindURL:
		return t.URL
	case KindMermaidNode:
		return t.NodeID
	case KindMermaidDiagram:
		if t.Diagram != "" {
			return t.Diagram
		}
		return t.Name
	default:
		return ""
	}
}

// Tag returns the canonical tag-string, the "#kind:value" encoding that the
// token contributes to the logical text stream (e.g. "#file:a.ts").
func (t Token) Tag() string {
	return "#" + t.Kind.String() + ":" + t.value()
}

// TagLen returns the rune length of the canonical tag-string. This is the
// length the token occupies in the logical text.
func (t Token) TagLen() int {
	return util.RuneLen(t.Tag())
}

// DisplayName returns the short human-readable label rendered inside the
// token's pill widget.
func (t Token) DisplayName() string {
	switch t.Kind {
	case KindCodeSnippet:
		return t.Name + " (" + util.IntToStr(t.StartLine) + "-" + util.IntToStr(t.EndLine) + ")"
	case KindTerminalCommand:
		return "$ " + t.Command
	case KindURL:
		return strings.TrimPrefix(strings.TrimPrefix(t.URL, "https://"), "http://")
	default:
		return t.value()
	}
}

// FullPath returns the long-form identification used for tooltips: the full
// path for filesystem-backed kinds, the raw value for the rest.
func (t Token) FullPath() string {
	switch t.Kind {
	case KindFile, KindDirectory, KindImage:
		if t.Path != "" {
			return t.Path
		}
		return t.Name
	case KindCodeSnippet:
		return t.Path + ":" + util.IntToStr(t.StartLine) + "-" + util.IntToStr(t.EndLine)
	case KindTerminalCommand:
		if t.Dir != "" {
			return t.Command + " (in " + t.Dir + ")"
		}
		return t.Command
	default:
		return t.value()
	}
}

// =============================================================================
// TOKEN LISTS
// =============================================================================

// List is an ordered, id-keyed collection of tokens, owned by the editor's
// caller. The editor only reflects it.
type List []Token

// ByID returns the token with the given id, if present.
func (l List) ByID(id string) (Token, bool) {
	for _, t := range l {
		if t.ID == id {
			return t, true
		}
	}
	return Token{}, false
}

// Has reports whether a token with the given id is present.
func (l List) Has(id string) bool {
	_, ok := l.ByID(id)
	return ok
}

// Without returns a copy of the list with the given id removed.
func (l List) Without(id string) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
