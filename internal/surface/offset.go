// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package surface

import "strings"

// =============================================================================
// POSITIONS AND RANGES
// =============================================================================

// Position is a point in the surface tree: a text node plus a rune offset
// into its content. Positions never point inside widget nodes, since those
// are atomic.
type Position struct {
	Node   *Node
	Offset int
}

// Valid reports whether the position points into a text node.
func (p Position) Valid() bool {
	return p.Node != nil && p.Node.kind == TextNode
}

// Range is a pair of positions in document order.
type Range struct {
	Start Position
	End   Position
}

// Collapsed reports whether the range is a single point.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// =============================================================================
// OFFSET MAPPER: TREE -> LOGICAL TEXT
// =============================================================================

// Extract produces the logical text of the subtree by depth-first traversal.
// Text nodes contribute their character content; widget nodes contribute
// their stored canonical tag-string and are not traversed into.
func Extract(root *Node) string {
	var b strings.Builder
	root.walk(func(n *Node) bool {
		switch n.kind {
		case TextNode:
			b.WriteString(string(n.text))
		case WidgetNode:
			b.WriteString(string(n.tag))
		}
		return true
	})
	return b.String()
}

// Length returns the rune length of the subtree's logical text without
// building the string.
func Length(root *Node) int {
	total := 0
	root.walk(func(n *Node) bool {
		total += n.Len()
		return true
	})
	return total
}

// =============================================================================
// OFFSET MAPPER: LOGICAL OFFSETS -> TREE
// =============================================================================

// Resolve maps the logical offset pair (start, end) to a Range whose
// boundaries fall inside text nodes only. It walks nodes in document order
// accumulating consumed length; once the running total reaches an offset it
// resolves it as (node, localOffset), clamping localOffset to the node's own
// text length.
//
// Returns ok=false when no such boundary exists: offsets out of range, or an
// offset falling strictly inside a widget's atomic span. Callers must fall
// back to caret-relative insertion rather than treating this as fatal.
func Resolve(root *Node, start, end int) (Range, bool) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > Length(root) {
		return Range{}, false
	}

	var r Range
	startDone, endDone := false, false
	inWidget := false
	consumed := 0

	root.walk(func(n *Node) bool {
		switch n.kind {
		case TextNode:
			l := len(n.text)
			if !startDone && start <= consumed+l {
				off := start - consumed
				if off < 0 {
					off = 0
				}
				r.Start = Position{Node: n, Offset: off}
				startDone = true
			}
			if !endDone && end <= consumed+l {
				off := end - consumed
				if off < 0 {
					off = 0
				}
				r.End = Position{Node: n, Offset: off}
				endDone = true
			}
			consumed += l
		case WidgetNode:
			l := len(n.tag)
			// A boundary strictly inside the tag span has no text-node
			// home: the widget is atomic.
			if !startDone && start > consumed && start < consumed+l {
				inWidget = true
				return false
			}
			if !endDone && end > consumed && end < consumed+l {
				inWidget = true
				return false
			}
			consumed += l
		}
		return !(startDone && endDone)
	})

	if inWidget || !startDone || !endDone {
		return Range{}, false
	}
	return r, true
}

// ResolvePoint maps a single logical offset to a collapsed position.
func ResolvePoint(root *Node, offset int) (Position, bool) {
	r, ok := Resolve(root, offset, offset)
	if !ok {
		return Position{}, false
	}
	return r.Start, true
}

// OffsetOf performs the inverse walk: given a position inside the tree it
// returns the logical offset of that point. Returns ok=false when the
// position's node is not part of the subtree.
func OffsetOf(root *Node, pos Position) (int, bool) {
	if !pos.Valid() {
		return 0, false
	}
	consumed := 0
	found := false
	root.walk(func(n *Node) bool {
		if n == pos.Node {
			off := pos.Offset
			if off < 0 {
				off = 0
			}
			if off > n.Len() {
				off = n.Len()
			}
			consumed += off
			found = true
			return false
		}
		consumed += n.Len()
		return true
	})
	if !found {
		return 0, false
	}
	return consumed, true
}

// WidgetBefore returns the widget node whose logical span ends exactly at
// the given offset, if any. This is the lookup behind atomic backspace: a
// collapsed caret at offset k whose preceding unit is a widget.
func WidgetBefore(root *Node, offset int) *Node {
	var hit *Node
	consumed := 0
	root.walk(func(n *Node) bool {
		next := consumed + n.Len()
		if n.kind == WidgetNode && next == offset {
			hit = n
			return false
		}
		if next > offset {
			return false
		}
		consumed = next
		return true
	})
	return hit
}

// FindWidget returns the widget node carrying the given token id, if any.
func FindWidget(root *Node, tokenID string) *Node {
	var hit *Node
	root.walk(func(n *Node) bool {
		if n.kind == WidgetNode && n.tokenID == tokenID {
			hit = n
			return false
		}
		return true
	})
	return hit
}
