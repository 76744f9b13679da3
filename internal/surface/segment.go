// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package surface

// =============================================================================
// DOCUMENT SEGMENTS
// =============================================================================

// SegmentKind identifies the type of a document segment.
type SegmentKind int

const (
	// TextSegment is a run of plain characters.
	TextSegment SegmentKind = iota

	// TokenSegment references one context token by id. It contributes the
	// token's canonical tag-string to the logical text.
	TokenSegment
)

// Segment is one unit of the document model: either a run of plain text or
// a reference to a context token.
type Segment struct {
	Kind    SegmentKind
	Text    string // TextSegment content, or the widget's tag-string
	TokenID string // TokenSegment only
}

// Segments flattens the tree into the ordered document model. Adjacent text
// runs are merged; empty runs are dropped. Concatenating the Text fields of
// the result always equals Extract on the same tree.
func Segments(root *Node) []Segment {
	var out []Segment
	root.walk(func(n *Node) bool {
		switch n.kind {
		case TextNode:
			if len(n.text) == 0 {
				return true
			}
			if len(out) > 0 && out[len(out)-1].Kind == TextSegment {
				out[len(out)-1].Text += string(n.text)
				return true
			}
			out = append(out, Segment{Kind: TextSegment, Text: string(n.text)})
		case WidgetNode:
			out = append(out, Segment{
				Kind:    TokenSegment,
				Text:    string(n.tag),
				TokenID: n.tokenID,
			})
		}
		return true
	})
	return out
}

// TokenIDs returns the ids of all token segments in document order.
func TokenIDs(root *Node) []string {
	var ids []string
	root.walk(func(n *Node) bool {
		if n.kind == WidgetNode {
			ids = append(ids, n.tokenID)
		}
		return true
	})
	return ids
}
