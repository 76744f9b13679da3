// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package token

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// KIND TESTS
// =============================================================================

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindFile, "file"},
		{KindDirectory, "directory"},
		{KindCodeSnippet, "code-snippet"},
		{KindImage, "image"},
		{KindTerminalCommand, "terminal-command"},
		{KindGitRef, "git-ref"},
		{KindURL, "url"},
		{KindMermaidNode, "mermaid-node"},
		{KindMermaidDiagram, "mermaid-diagram"},
		{Kind(99), "unknown"},
	}

	for _, tc := range tests {
		got := tc.kind.String()
		if got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for k := KindFile; k <= KindMermaidDiagram; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, true", k.String(), got, ok, k)
		}
	}
	if _, ok := ParseKind("bogus"); ok {
		t.Error("ParseKind(\"bogus\") should fail")
	}
}

// =============================================================================
// ENCODING TESTS
// =============================================================================

func TestToken_Tag(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"file", Token{ID: "t1", Kind: KindFile, Name: "a.ts", Path: "src/a.ts"}, "#file:a.ts"},
		{"file path fallback", Token{Kind: KindFile, Path: "src/b.go"}, "#file:src/b.go"},
		{"directory", Token{Kind: KindDirectory, Name: "src"}, "#directory:src"},
		{"snippet", Token{Kind: KindCodeSnippet, Name: "a.ts", StartLine: 10, EndLine: 20}, "#code-snippet:a.ts:10-20"},
		{"image", Token{Kind: KindImage, Name: "logo.png"}, "#image:logo.png"},
		{"terminal", Token{Kind: KindTerminalCommand, Command: "go test ./..."}, "#terminal-command:go test ./..."},
		{"git ref", Token{Kind: KindGitRef, Ref: "HEAD~3"}, "#git-ref:HEAD~3"},
		{"url", Token{Kind: KindURL, URL: "https://example.com/x"}, "#url:https://example.com/x"},
		{"mermaid node", Token{Kind: KindMermaidNode, NodeID: "n42"}, "#mermaid-node:n42"},
		{"mermaid diagram", Token{Kind: KindMermaidDiagram, Diagram: "flow"}, "#mermaid-diagram:flow"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tok.Tag(); got != tc.want {
				t.Errorf("Tag() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToken_TagLen(t *testing.T) {
	tok := Token{Kind: KindFile, Name: "a.ts"}
	if got := tok.TagLen(); got != len("#file:a.ts") {
		t.Errorf("TagLen() = %d, want %d", got, len("#file:a.ts"))
	}

	// Rune count, not byte count.
	cjk := Token{Kind: KindFile, Name: "日本.md"}
	want := len([]rune("#file:日本.md"))
	if got := cjk.TagLen(); got != want {
		t.Errorf("TagLen() = %d, want %d", got, want)
	}
}

func TestToken_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"file", Token{Kind: KindFile, Name: "a.ts"}, "a.ts"},
		{"snippet", Token{Kind: KindCodeSnippet, Name: "a.ts", StartLine: 3, EndLine: 9}, "a.ts (3-9)"},
		{"terminal", Token{Kind: KindTerminalCommand, Command: "ls -la"}, "$ ls -la"},
		{"url strips scheme", Token{Kind: KindURL, URL: "https://example.com"}, "example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tok.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToken_FullPath(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"file", Token{Kind: KindFile, Name: "a.ts", Path: "src/a.ts"}, "src/a.ts"},
		{"snippet", Token{Kind: KindCodeSnippet, Path: "src/a.ts", StartLine: 1, EndLine: 4}, "src/a.ts:1-4"},
		{"terminal with dir", Token{Kind: KindTerminalCommand, Command: "make", Dir: "/tmp"}, "make (in /tmp)"},
		{"terminal bare", Token{Kind: KindTerminalCommand, Command: "make"}, "make"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tok.FullPath(); got != tc.want {
				t.Errorf("FullPath() = %q, want %q", got, tc.want)
			}
		})
	}
}

// =============================================================================
// LIST TESTS
// =============================================================================

func TestList_ByID(t *testing.T) {
	l := List{
		{ID: "a", Kind: KindFile, Name: "a.ts"},
		{ID: "b", Kind: KindGitRef, Ref: "main"},
	}

	got, ok := l.ByID("b")
	if !ok || got.Ref != "main" {
		t.Errorf("ByID(\"b\") = %+v, %v", got, ok)
	}
	if _, ok := l.ByID("missing"); ok {
		t.Error("ByID(\"missing\") should fail")
	}
	if !l.Has("a") || l.Has("z") {
		t.Error("Has() mismatch")
	}
}

func TestList_Without(t *testing.T) {
	l := List{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := l.Without("b")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Without(\"b\") = %+v", got)
	}
	if len(l) != 3 {
		t.Error("Without must not mutate the receiver")
	}
}

func TestKind_JSONUsesNames(t *testing.T) {
	b, err := json.Marshal(KindCodeSnippet)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"code-snippet"` {
		t.Errorf("marshal = %s, want %q", b, "code-snippet")
	}

	var k Kind
	if err := json.Unmarshal([]byte(`"git-ref"`), &k); err != nil {
		t.Fatal(err)
	}
	if k != KindGitRef {
		t.Errorf("unmarshal = %v, want KindGitRef", k)
	}

	if err := json.Unmarshal([]byte(`"banana"`), &k); err == nil {
		t.Error("unmarshal of unknown kind should fail")
	}
}
