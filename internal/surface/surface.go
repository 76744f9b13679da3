// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package surface

// =============================================================================
// SURFACE
// =============================================================================

// Surface is the editable tree plus its selection. It is exclusively owned
// by one editor instance; all mutation happens synchronously inside a single
// event handler, so there is no locking.
type Surface struct {
	root *Node
	sel  Range
}

// New creates an empty surface: a root element holding one empty text node,
// with a collapsed caret at its start.
func New() *Surface {
	s := &Surface{root: NewElement()}
	t := NewText("")
	s.root.Append(t)
	s.sel = collapsed(Position{Node: t, Offset: 0})
	return s
}

func collapsed(p Position) Range {
	return Range{Start: p, End: p}
}

// Root returns the tree root.
func (s *Surface) Root() *Node { return s.root }

// Selection returns the current selection range.
func (s *Surface) Selection() Range { return s.sel }

// SetSelection replaces the selection. Invalid positions are ignored in
// favor of a caret at the end of the content.
func (s *Surface) SetSelection(r Range) {
	if !r.Start.Valid() || !r.End.Valid() {
		s.CaretToEnd()
		return
	}
	s.sel = r
}

// HasForeign reports whether the tree contains elements belonging to an
// unrelated rendering mode. When it does, external-value synchronization is
// skipped entirely; ownership of the surface belongs elsewhere.
func (s *Surface) HasForeign() bool {
	return s.root.hasForeign()
}

// Text returns the logical text of the whole surface.
func (s *Surface) Text() string {
	return Extract(s.root)
}

// Len returns the rune length of the logical text.
func (s *Surface) Len() int {
	return Length(s.root)
}

// =============================================================================
// CARET AND SELECTION OFFSETS
// =============================================================================

// CaretOffset returns the logical offset of a collapsed selection. A
// non-collapsed selection or an unresolvable position returns ok=false;
// callers treat that as "no mention" / "append at end" rather than failing.
func (s *Surface) CaretOffset() (int, bool) {
	if !s.sel.Collapsed() {
		return 0, false
	}
	return OffsetOf(s.root, s.sel.Start)
}

// SelectionOffsets returns the logical offsets of the selection boundaries.
func (s *Surface) SelectionOffsets() (start, end int, ok bool) {
	start, ok = OffsetOf(s.root, s.sel.Start)
	if !ok {
		return 0, 0, false
	}
	end, ok = OffsetOf(s.root, s.sel.End)
	if !ok {
		return 0, 0, false
	}
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// SetCaret places a collapsed caret at the given logical offset. If the
// offset cannot be resolved the caret moves to the end of the content.
func (s *Surface) SetCaret(offset int) {
	if p, ok := ResolvePoint(s.root, offset); ok {
		s.sel = collapsed(p)
		return
	}
	s.CaretToEnd()
}

// SelectRange selects the logical range [start, end). Unresolvable ranges
// leave the selection where it was.
func (s *Surface) SelectRange(start, end int) bool {
	r, ok := Resolve(s.root, start, end)
	if !ok {
		return false
	}
	s.sel = r
	return true
}

// CaretToEnd moves a collapsed caret past the last character.
func (s *Surface) CaretToEnd() {
	var last *Node
	s.root.walk(func(n *Node) bool {
		if n.kind == TextNode {
			last = n
		}
		return true
	})
	if last == nil {
		last = NewText("")
		s.root.Append(last)
	}
	s.sel = collapsed(Position{Node: last, Offset: last.Len()})
}

// =============================================================================
// TEXT EDITING
// =============================================================================

// InsertText splices s at the caret, deleting any selected range first.
// Returns the token ids of widgets the range delete removed.
func (sf *Surface) InsertText(s string) []string {
	var removed []string
	if !sf.sel.Collapsed() {
		removed = sf.DeleteSelection()
	}
	p := sf.sel.Start
	if !p.Valid() {
		sf.CaretToEnd()
		p = sf.sel.Start
	}
	p.Node.insertText(p.Offset, s)
	sf.sel = collapsed(Position{Node: p.Node, Offset: p.Offset + len([]rune(s))})
	return removed
}

// DeleteBackward removes the single rune before a collapsed caret, walking
// into the preceding text node when the caret sits at offset 0. Crossing a
// widget boundary is NOT handled here: the editor checks WidgetBefore first
// and deletes the whole token atomically instead.
func (s *Surface) DeleteBackward() bool {
	if !s.sel.Collapsed() {
		s.DeleteSelection()
		return true
	}
	off, ok := s.CaretOffset()
	if !ok || off == 0 {
		return false
	}
	removed := s.deleteOffsets(off-1, off)
	// deleteOffsets refuses to chop widgets; a widget directly before the
	// caret means there is nothing here to delete one rune of.
	return removed
}

// DeleteSelection removes the selected range and collapses the caret to its
// start. Widgets wholly inside the range are excised; their token ids are
// returned so the owner can be told to drop them.
func (s *Surface) DeleteSelection() []string {
	start, end, ok := s.SelectionOffsets()
	if !ok || start == end {
		return nil
	}
	return s.DeleteRange(start, end)
}

// DeleteRange removes the logical range [start, end), returning the token
// ids of widgets that were wholly inside it. Widgets straddling a boundary
// are left untouched (atomicity), with the text portions removed around
// them.
func (s *Surface) DeleteRange(start, end int) []string {
	if start > end {
		start, end = end, start
	}
	type span struct {
		node  *Node
		begin int
	}
	var spans []span
	consumed := 0
	s.root.walk(func(n *Node) bool {
		spans = append(spans, span{node: n, begin: consumed})
		consumed += n.Len()
		return true
	})

	var removedIDs []string
	for _, sp := range spans {
		n := sp.node
		nodeStart, nodeEnd := sp.begin, sp.begin+n.Len()
		if nodeEnd <= start || nodeStart >= end {
			continue
		}
		switch n.kind {
		case WidgetNode:
			if nodeStart >= start && nodeEnd <= end {
				removedIDs = append(removedIDs, n.tokenID)
				n.Remove()
			}
		case TextNode:
			from, to := start-nodeStart, end-nodeStart
			n.deleteText(from, to)
		}
	}

	s.normalize()
	s.SetCaret(start)
	return removedIDs
}

// Clear resets the surface to a single empty text node with the caret at 0.
func (s *Surface) Clear() {
	s.root = NewElement()
	t := NewText("")
	s.root.Append(t)
	s.sel = collapsed(Position{Node: t, Offset: 0})
}

// SetPlainText replaces the whole content with the given plain text and
// moves the caret to the end. This path does not reconstruct widgets from
// tag-strings; it is a wholesale overwrite used for drafts and restores.
func (sf *Surface) SetPlainText(s string) {
	sf.root = NewElement()
	t := NewText(s)
	sf.root.Append(t)
	sf.sel = collapsed(Position{Node: t, Offset: t.Len()})
}

// =============================================================================
// WIDGET EDITING
// =============================================================================

// InsertWidget splices a widget for the given token at the caret (deleting
// any selected range first), follows it with a single separating space, and
// places the caret immediately after that space. Returns the token ids of
// widgets a selection delete removed.
func (s *Surface) InsertWidget(tokenID, tag string) []string {
	var removed []string
	if !s.sel.Collapsed() {
		removed = s.DeleteSelection()
	}
	p := s.sel.Start
	if !p.Valid() {
		s.CaretToEnd()
		p = s.sel.Start
	}

	rest := p.Node.splitText(p.Offset)
	parent := p.Node.parent
	if parent == nil {
		// Detached caret node; recover by appending at the root.
		parent = s.root
		parent.Append(rest)
	}
	w := NewWidget(tokenID, tag)
	parent.InsertAt(rest.index(), w)
	rest.insertText(0, " ")

	s.normalize()
	// The separator is the first rune after the widget's tag span.
	endOfTag := 0
	if off, ok := OffsetOf(s.root, Position{Node: rest, Offset: 1}); ok {
		endOfTag = off
	} else {
		endOfTag = s.Len()
	}
	s.SetCaret(endOfTag)
	return removed
}

// RemoveWidget excises the widget carrying the given token id and, if the
// character immediately following it is the single separating space that
// was inserted alongside it, excises that too. Reports whether a widget was
// found.
func (s *Surface) RemoveWidget(tokenID string) bool {
	w := FindWidget(s.root, tokenID)
	if w == nil {
		return false
	}
	start, _ := offsetOfNode(s.root, w)
	w.Remove()
	s.normalize()

	// After excision the old tag span has collapsed; the character now at
	// `start` is whatever followed the widget.
	if p, ok := ResolvePoint(s.root, start); ok {
		runes := p.Node.text
		if p.Offset < len(runes) && runes[p.Offset] == ' ' {
			p.Node.deleteText(p.Offset, p.Offset+1)
			s.normalize()
		}
	}
	s.SetCaret(start)
	return true
}

// offsetOfNode returns the logical offset at which the node's span begins.
func offsetOfNode(root *Node, target *Node) (int, bool) {
	consumed := 0
	found := false
	root.walk(func(n *Node) bool {
		if n == target {
			found = true
			return false
		}
		consumed += n.Len()
		return true
	})
	return consumed, found
}

// deleteOffsets removes [start, end) and reports whether anything other
// than widget interiors was removed.
func (s *Surface) deleteOffsets(start, end int) bool {
	before := s.Len()
	s.DeleteRange(start, end)
	return s.Len() != before
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// normalize repairs the tree after a mutation: adjacent text nodes are
// merged, empty text runs next to non-empty ones are dropped, and every
// widget gets text-node neighbors so caret positions exist at its
// boundaries. The selection is re-anchored by logical offset across the
// rewrite.
func (s *Surface) normalize() {
	startOff, endOff, haveSel := s.SelectionOffsets()

	normalizeElement(s.root)
	if len(s.root.children) == 0 {
		s.root.Append(NewText(""))
	}

	if haveSel {
		if startOff == endOff {
			s.SetCaret(startOff)
		} else if !s.SelectRange(startOff, endOff) {
			s.SetCaret(startOff)
		}
	} else {
		s.CaretToEnd()
	}
}

func normalizeElement(el *Node) {
	// Bottom-up so child elements are already clean.
	for _, c := range el.children {
		if c.kind == ElementNode {
			normalizeElement(c)
		}
	}

	var out []*Node
	for _, c := range el.children {
		if c.kind == TextNode && len(out) > 0 && out[len(out)-1].kind == TextNode {
			prev := out[len(out)-1]
			prev.text = append(prev.text, c.text...)
			c.parent = nil
			continue
		}
		// Drop empty elements left behind by deletes; foreign elements are
		// preserved untouched.
		if c.kind == ElementNode && len(c.children) == 0 && !c.foreign {
			c.parent = nil
			continue
		}
		out = append(out, c)
	}

	// Widgets need text neighbors for caret placement.
	withGaps := make([]*Node, 0, len(out))
	for i, c := range out {
		if c.kind == WidgetNode {
			if i == 0 || out[i-1].kind == WidgetNode {
				gap := NewText("")
				gap.parent = el
				withGaps = append(withGaps, gap)
			}
		}
		withGaps = append(withGaps, c)
	}
	if len(withGaps) > 0 && withGaps[len(withGaps)-1].kind == WidgetNode {
		gap := NewText("")
		gap.parent = el
		withGaps = append(withGaps, gap)
	}

	el.children = withGaps
}
