// Package viewport tracks what a rendered document's scroll position and
// link selection look like, and keeps the two reconciled against each
// other as either one moves. It never renders; it consumes a
// render.RenderedDocument produced elsewhere.
package viewport

import (
	"github.com/Builditluc/wiki-tui/document"
	"github.com/Builditluc/wiki-tui/link"
	"github.com/Builditluc/wiki-tui/render"
)

// Selection names the currently highlighted link by its node index in the
// source document. A zero-value Selection (with Active false) means
// nothing is selected.
type Selection struct {
	NodeIndex int
	Active    bool
}

// RenderFunc renders doc at width, matching render.Render's signature.
// View takes it as a parameter so a renderer-mode switch only needs to
// swap the function, not the View's plumbing.
type RenderFunc func(doc *document.Document, width int) *render.RenderedDocument

// View is the scroll position and link selection over one page's
// rendered document. It owns a small render cache keyed by width so
// repeated renders at an unchanged width are free.
type View struct {
	renderFn RenderFunc

	doc *document.Document

	width, height int
	y             int

	selection Selection

	cacheWidth int
	cache      *render.RenderedDocument
}

// New returns a View over doc, rendered with renderFn, sized to
// width x height.
func New(doc *document.Document, renderFn RenderFunc, width, height int) *View {
	v := &View{
		renderFn:   renderFn,
		doc:        doc,
		width:      width,
		height:     height,
		cacheWidth: -1,
	}
	v.rendered()
	return v
}

// rendered returns the current width's render, computing and caching it
// on first use or after a width change invalidates the cache.
func (v *View) rendered() *render.RenderedDocument {
	if v.cache == nil || v.cacheWidth != v.width {
		v.cache = v.renderFn(v.doc, v.width)
		v.cacheWidth = v.width
	}
	return v.cache
}

// Y returns the current top-of-viewport line.
func (v *View) Y() int { return v.y }

// Selection returns the current selection.
func (v *View) Selection() Selection { return v.selection }

// VisibleLines returns the rendered lines currently inside the viewport
// window, i.e. [y, y+height). A shell's render_into draws these directly
// into its framebuffer.
func (v *View) VisibleLines() []render.Line {
	lines := v.rendered().Lines
	start := v.y
	if start > len(lines) {
		start = len(lines)
	}
	end := start + v.height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}

func (v *View) lineCount() int { return len(v.rendered().Lines) }

func (v *View) maxY() int {
	if m := v.lineCount() - v.height; m > 0 {
		return m
	}
	return 0
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// ScrollToY clamps y to the valid range, assigns it, and reconciles the
// selection against the new viewport.
func (v *View) ScrollToY(y int) {
	v.y = clamp(y, 0, v.maxY())
	v.reconcileSelectionAfterScroll()
}

// ScrollBy moves the viewport by delta lines.
func (v *View) ScrollBy(delta int) { v.ScrollToY(v.y + delta) }

// ScrollHalfPage moves the viewport by half its height, in the
// direction of sign(delta).
func (v *View) ScrollHalfPage(delta int) {
	half := v.height / 2
	if half == 0 {
		half = 1
	}
	if delta < 0 {
		v.ScrollBy(-half)
	} else {
		v.ScrollBy(half)
	}
}

// ScrollToTop moves the viewport to the first line.
func (v *View) ScrollToTop() { v.ScrollToY(0) }

// ScrollToBottom moves the viewport to the last full page.
func (v *View) ScrollToBottom() { v.ScrollToY(v.maxY()) }

// linkYOf returns the y of idx in the current link index, and whether it
// was found.
func (v *View) linkYOf(idx int) (int, bool) {
	for _, e := range v.rendered().LinkIndex {
		if e.NodeIndex == idx {
			return e.Y, true
		}
	}
	return 0, false
}

func (v *View) inView(y int) bool {
	return y >= v.y && y < v.y+v.height
}

// reconcileSelectionAfterScroll keeps the current selection if it is
// still visible after a scroll, otherwise snaps to the nearest in-view
// link in the direction of travel.
func (v *View) reconcileSelectionAfterScroll() {
	if !v.selection.Active {
		return
	}
	sy, ok := v.linkYOf(v.selection.NodeIndex)
	if !ok {
		return
	}
	if v.inView(sy) {
		return
	}

	idx := v.rendered().LinkIndex
	if sy < v.y {
		// Viewport moved down past the selection: use the topmost in-view link.
		for _, e := range idx {
			if v.inView(e.Y) {
				v.selection = Selection{NodeIndex: e.NodeIndex, Active: true}
				return
			}
		}
		return
	}
	// Viewport moved up past the selection: use the bottommost in-view link.
	for i := len(idx) - 1; i >= 0; i-- {
		if v.inView(idx[i].Y) {
			v.selection = Selection{NodeIndex: idx[i].NodeIndex, Active: true}
			return
		}
	}
}

// reconcileViewportAfterSelection scrolls just enough to bring a newly
// selected link's line into view.
func (v *View) reconcileViewportAfterSelection() {
	if !v.selection.Active {
		return
	}
	sy, ok := v.linkYOf(v.selection.NodeIndex)
	if !ok {
		return
	}
	if sy < v.y {
		v.ScrollToY(sy)
	} else if sy >= v.y+v.height {
		v.ScrollToY(sy - v.height + 1)
	}
}

func isLinkPayload(p document.Payload) bool {
	_, ok := p.(document.Link)
	return ok
}

// Nodes are appended in pre-order across the document's roots (each
// root's whole subtree is laid down before the next root begins), so the
// contiguous index range [0, doc.Len()) already visits every node, root
// or not, in document order. Selection walks that full range rather than
// a single root's descendants, since a parsed page is free to have more
// than one root (adjacent top-level sections).

// SelectFirstLink selects the first Link node in the document.
func (v *View) SelectFirstLink() {
	for idx := 0; idx < v.doc.Len(); idx++ {
		if isLinkPayload(v.doc.Node(idx).Payload) {
			v.selection = Selection{NodeIndex: idx, Active: true}
			v.reconcileViewportAfterSelection()
			return
		}
	}
}

// SelectLastLink selects the last Link node in the document.
func (v *View) SelectLastLink() {
	found := document.NoIndex
	for idx := 0; idx < v.doc.Len(); idx++ {
		if isLinkPayload(v.doc.Node(idx).Payload) {
			found = idx
		}
	}
	if found != document.NoIndex {
		v.selection = Selection{NodeIndex: found, Active: true}
		v.reconcileViewportAfterSelection()
	}
}

// SelectNextLink selects the Link node immediately after the current
// selection, if any.
func (v *View) SelectNextLink() {
	if !v.selection.Active {
		v.SelectFirstLink()
		return
	}
	for idx := v.selection.NodeIndex + 1; idx < v.doc.Len(); idx++ {
		if isLinkPayload(v.doc.Node(idx).Payload) {
			v.selection = Selection{NodeIndex: idx, Active: true}
			v.reconcileViewportAfterSelection()
			return
		}
	}
}

// SelectPrevLink selects the Link node immediately before the current
// selection, if any.
func (v *View) SelectPrevLink() {
	if !v.selection.Active {
		v.SelectLastLink()
		return
	}
	for idx := v.selection.NodeIndex - 1; idx >= 0; idx-- {
		if isLinkPayload(v.doc.Node(idx).Payload) {
			v.selection = Selection{NodeIndex: idx, Active: true}
			v.reconcileViewportAfterSelection()
			return
		}
	}
}

// SelectTopLink selects the first in-view link (by y). A no-op if no
// link is currently in view.
func (v *View) SelectTopLink() {
	for _, e := range v.rendered().LinkIndex {
		if v.inView(e.Y) {
			v.selection = Selection{NodeIndex: e.NodeIndex, Active: true}
			return
		}
	}
}

// SelectBottomLink selects the last in-view link (by y). A no-op if no
// link is currently in view.
func (v *View) SelectBottomLink() {
	idx := v.rendered().LinkIndex
	for i := len(idx) - 1; i >= 0; i-- {
		if v.inView(idx[i].Y) {
			v.selection = Selection{NodeIndex: idx[i].NodeIndex, Active: true}
			return
		}
	}
}

const contentTopAnchor = "Content_Top"

// JumpToHeader scrolls to the last Header node whose id equals anchor.
// The reserved name Content_Top always means "scroll to the very top",
// even if a real heading happens to carry that id.
func (v *View) JumpToHeader(anchor string) {
	if anchor == contentTopAnchor {
		v.ScrollToY(0)
		return
	}

	found := document.NoIndex
	for idx := 0; idx < v.doc.Len(); idx++ {
		if h, ok := v.doc.Node(idx).Payload.(document.Header); ok && h.ID == anchor {
			found = idx
		}
	}
	if found != document.NoIndex {
		v.ScrollToNode(found)
	}
}

// ScrollToNode scrolls to the smallest y such that some word on line y
// belongs to idx's subtree.
func (v *View) ScrollToNode(idx int) {
	last := v.doc.LastDescendantIndex(idx)
	for y, line := range v.rendered().Lines {
		for _, w := range line {
			if w.NodeIndex >= idx && w.NodeIndex <= last {
				v.ScrollToY(y)
				return
			}
		}
	}
}

// Resize updates the viewport's dimensions. A width change invalidates
// the render cache lookup (rendered() will recompute on next use); y is
// then reclamped.
func (v *View) Resize(width, height int) {
	v.width = width
	v.height = height
	v.y = clamp(v.y, 0, v.maxY())
}

// SetRenderFunc switches the renderer, clearing the cache and resetting
// selection to (0, 0). Scroll y is kept, then clamped against the new
// render's line count.
func (v *View) SetRenderFunc(fn RenderFunc) {
	v.renderFn = fn
	v.cache = nil
	v.cacheWidth = -1
	v.selection = Selection{}
	v.ScrollToY(v.y)
}

// OpenSelectedLink resolves the currently selected link into an Action
// for the surrounding shell to carry out.
func (v *View) OpenSelectedLink() (Action, error) {
	if !v.selection.Active {
		return nil, ErrNoSelection
	}
	node := v.doc.Node(v.selection.NodeIndex)
	payload, ok := node.Payload.(document.Link)
	if !ok {
		return nil, ErrNotALink
	}

	switch variant := payload.Variant.(type) {
	case link.Internal, link.AnchorLink:
		return OpenRequest{Variant: payload.Variant}, nil
	case link.External:
		return ExternalNotice{URL: variant.URL}, nil
	case link.RedLink:
		return PageNotExistNotice{Title: variant.Title}, nil
	default: // Media, ExternalToInternal
		return UnsupportedNotice{}, nil
	}
}
