// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package surface models the visual node tree of the inline input: runs of
// plain text interleaved with atomic token pill widgets.
package surface

// =============================================================================
// NODE KINDS
// =============================================================================

// NodeKind identifies the type of a tree node.
type NodeKind int

const (
	// ElementNode is a container with ordered children.
	ElementNode NodeKind = iota

	// TextNode is a run of plain characters.
	TextNode

	// WidgetNode is an atomic token pill. It contributes its stored
	// tag-string to the logical text and is never descended into.
	WidgetNode
)

// String returns the name of the node kind.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case WidgetNode:
		return "widget"
	default:
		return "unknown"
	}
}

// =============================================================================
// NODE
// =============================================================================

// Node is one node of the surface tree. The zero Node is not usable; use the
// constructors.
type Node struct {
	kind   NodeKind
	parent *Node

	// TextNode content, stored as runes so offsets index characters.
	text []rune

	// WidgetNode identity. The tag is captured at insertion time so the
	// logical length of the widget never changes under the mapper even if
	// the owner's token list is mid-update.
	tokenID string
	tag     []rune

	// Foreign marks an element owned by a different rendering mode (e.g.
	// template placeholders). The reconciler refuses to touch trees that
	// contain foreign elements.
	foreign bool

	// ElementNode children, in document order.
	children []*Node
}

// NewElement creates an empty container node.
func NewElement() *Node {
	return &Node{kind: ElementNode}
}

// NewForeignElement creates a container owned by another rendering mode.
func NewForeignElement() *Node {
	return &Node{kind: ElementNode, foreign: true}
}

// NewText creates a text node with the given content.
func NewText(s string) *Node {
	return &Node{kind: TextNode, text: []rune(s)}
}

// NewWidget creates an atomic widget node for the token with the given id,
// storing its canonical tag-string.
func NewWidget(tokenID, tag string) *Node {
	return &Node{kind: WidgetNode, tokenID: tokenID, tag: []rune(tag)}
}

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Parent returns the node's parent, or nil for a detached node or the root.
func (n *Node) Parent() *Node { return n.parent }

// Foreign reports whether the node is owned by another rendering mode.
func (n *Node) Foreign() bool { return n.foreign }

// TokenID returns the token id of a widget node, or "" for other kinds.
func (n *Node) TokenID() string { return n.tokenID }

// Tag returns the stored tag-string of a widget node.
func (n *Node) Tag() string { return string(n.tag) }

// Text returns the content of a text node.
func (n *Node) Text() string { return string(n.text) }

// SetText replaces the content of a text node.
func (n *Node) SetText(s string) {
	if n.kind == TextNode {
		n.text = []rune(s)
	}
}

// Len returns the logical length the node contributes to the text stream:
// rune count for text nodes, tag-string length for widgets, 0 for elements
// (their children are counted by the walk).
func (n *Node) Len() int {
	switch n.kind {
	case TextNode:
		return len(n.text)
	case WidgetNode:
		return len(n.tag)
	default:
		return 0
	}
}

// Children returns the child slice of an element node.
func (n *Node) Children() []*Node { return n.children }

// =============================================================================
// TREE MUTATION
// =============================================================================

// Append adds child at the end of n's children.
func (n *Node) Append(child *Node) {
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertAt inserts child at index i of n's children, clamped to the valid
// range.
func (n *Node) InsertAt(i int, child *Node) {
	child.detach()
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// Remove detaches n from its parent. Removing an already-detached node is a
// no-op.
func (n *Node) Remove() {
	n.detach()
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// index returns n's position among its parent's children, or -1.
func (n *Node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// splitText splits a text node at the given rune offset, leaving the prefix
// in n and returning the new suffix node inserted right after it. Offsets
// outside the content are clamped.
func (n *Node) splitText(at int) *Node {
	if at < 0 {
		at = 0
	}
	if at > len(n.text) {
		at = len(n.text)
	}
	rest := NewText(string(n.text[at:]))
	n.text = n.text[:at]
	if n.parent != nil {
		n.parent.InsertAt(n.index()+1, rest)
	}
	return rest
}

// insertText splices s into a text node at the given rune offset.
func (n *Node) insertText(at int, s string) {
	if at < 0 {
		at = 0
	}
	if at > len(n.text) {
		at = len(n.text)
	}
	ins := []rune(s)
	out := make([]rune, 0, len(n.text)+len(ins))
	out = append(out, n.text[:at]...)
	out = append(out, ins...)
	out = append(out, n.text[at:]...)
	n.text = out
}

// deleteText removes the rune range [from, to) from a text node, clamped.
func (n *Node) deleteText(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(n.text) {
		to = len(n.text)
	}
	if from >= to {
		return
	}
	n.text = append(n.text[:from], n.text[to:]...)
}

// =============================================================================
// WALKS
// =============================================================================

// walk visits text and widget nodes in document order, depth first. Widget
// nodes are treated as leaves. Returning false stops the walk.
func (n *Node) walk(fn func(*Node) bool) bool {
	switch n.kind {
	case TextNode, WidgetNode:
		return fn(n)
	default:
		for _, c := range n.children {
			if !c.walk(fn) {
				return false
			}
		}
		return true
	}
}

// hasForeign reports whether the subtree contains any foreign element.
func (n *Node) hasForeign() bool {
	if n.foreign {
		return true
	}
	for _, c := range n.children {
		if c.hasForeign() {
			return true
		}
	}
	return false
}

// debugString renders the subtree for test failure messages.
func (n *Node) debugString() string {
	switch n.kind {
	case TextNode:
		return "T(" + string(n.text) + ")"
	case WidgetNode:
		return "W(" + n.tokenID + "=" + string(n.tag) + ")"
	default:
		s := "E["
		for i, c := range n.children {
			if i > 0 {
				s += " "
			}
			s += c.debugString()
		}
		return s + "]"
	}
}
