// Package render turns a parsed document into styled, width-wrapped lines.
// It is purely functional: the same document and width always produce the
// same RenderedDocument.
package render

import (
	"strings"

	"github.com/Builditluc/wiki-tui/document"
)

// Render walks doc and wraps it to width (in cells), producing the finished
// lines and the link index.
func Render(doc *document.Document, width int) *RenderedDocument {
	r := &renderer{doc: doc, width: width}
	if doc.Len() == 0 {
		return &RenderedDocument{}
	}
	for root := range doc.Roots() {
		r.renderNode(root)
	}
	r.clearLine()
	return &RenderedDocument{Lines: r.lines, LinkIndex: r.linkIndex}
}

type renderer struct {
	doc       *document.Document
	width     int
	lines     []Line
	cur       Line
	ctxs      []context
	mods      modifierSet
	links     []int // node indices of links awaiting their first word
	linkIndex []LinkEntry
}

func (r *renderer) renderNode(idx int) {
	r.preChildren(idx)
	for child := range r.doc.Children(idx) {
		r.renderNode(child)
	}
	r.postChildren(idx)
}

func (r *renderer) context() context {
	if len(r.ctxs) == 0 {
		return contextNormal
	}
	return r.ctxs[len(r.ctxs)-1]
}

func (r *renderer) pushContext(c context) { r.ctxs = append(r.ctxs, c) }
func (r *renderer) popContext() {
	if len(r.ctxs) > 0 {
		r.ctxs = r.ctxs[:len(r.ctxs)-1]
	}
}

func (r *renderer) currentStyle() Style {
	return r.mods.apply(r.context().baseStyle())
}

func (r *renderer) isLastWhitespace() bool {
	return len(r.cur) > 0 && r.cur[len(r.cur)-1].isWhitespaceSentinel()
}

func (r *renderer) isLastEmpty() bool {
	if len(r.cur) != 0 {
		return false
	}
	if len(r.lines) == 0 {
		return true
	}
	return len(r.lines[len(r.lines)-1]) == 0
}

func (r *renderer) addWhitespace() {
	if r.isLastWhitespace() {
		return
	}
	r.cur = append(r.cur, Word{NodeIndex: document.NoIndex, WhitespaceWidth: 1})
}

func (r *renderer) clearLine() {
	if len(r.cur) == 0 {
		return
	}
	r.lines = append(r.lines, r.cur)
	r.cur = nil
}

func (r *renderer) addEmptyLine() {
	r.clearLine()
	r.lines = append(r.lines, Line{})
}

func (r *renderer) ensureEmptyLine() {
	if !r.isLastEmpty() {
		r.addEmptyLine()
	}
}

func (r *renderer) resolvePendingLinks() {
	if len(r.links) == 0 {
		return
	}
	y := len(r.lines)
	for _, idx := range r.links {
		r.linkIndex = append(r.linkIndex, LinkEntry{Y: y, NodeIndex: idx})
	}
	r.links = r.links[:0]
}

// wrapAppend merges words into the current line, breaking it across
// multiple lines as needed.
func (r *renderer) wrapAppend(words []Word) {
	if len(words) == 0 {
		return
	}

	currentWidth := 0.0
	for _, w := range r.cur {
		currentWidth += float64(w.Width) + w.WhitespaceWidth
	}
	remaining := float64(r.width) - currentWidth

	if float64(words[0].Width) > remaining {
		r.clearLine()
		remaining = float64(r.width)
	}

	r.resolvePendingLinks()

	sublines := optimalFitBreak(words, remaining, float64(r.width))
	if len(sublines) == 0 {
		return
	}

	r.cur = append(r.cur, sublines[0]...)
	if len(sublines) > 1 {
		r.clearLine()
		for _, sub := range sublines[1 : len(sublines)-1] {
			r.lines = append(r.lines, sub)
		}
		r.cur = sublines[len(sublines)-1]
	}
}

func (r *renderer) produceText(nodeIndex int, contents string) {
	if r.isLastWhitespace() && strings.IndexByte(",.", contents[0]) >= 0 {
		r.cur = r.cur[:len(r.cur)-1]
	}

	trailingSpace := strings.HasSuffix(contents, " ")
	lexemes := strings.Fields(contents)
	if len(lexemes) == 0 {
		return
	}

	words := make([]Word, len(lexemes))
	style := r.currentStyle()
	for i, lex := range lexemes {
		words[i] = Word{
			NodeIndex:       nodeIndex,
			Content:         lex,
			Style:           style,
			Width:           len([]rune(lex)),
			WhitespaceWidth: 1,
		}
	}
	if !trailingSpace {
		words[len(words)-1].WhitespaceWidth = 0
	}

	r.wrapAppend(words)
}

func (r *renderer) preChildren(idx int) {
	node := r.doc.Node(idx)
	isBlock := false

	switch p := node.Payload.(type) {
	case document.Section:
		isBlock = true
	case document.Header:
		r.pushContext(contextHeader)
		r.mods.bold = true
		isBlock = true
	case document.Text:
		if len(p.Contents) > 0 {
			r.produceText(idx, p.Contents)
		}
	case document.Division:
		isBlock = true
	case document.Paragraph:
		isBlock = true
	case document.Span:
		// no block break
	case document.Hatnote:
		isBlock = true
	case document.RedirectMessage:
		isBlock = true
	case document.Disambiguation:
		isBlock = true
	case document.OrderedList:
		isBlock = true
	case document.UnorderedList:
		isBlock = true
	case document.ListItem:
		r.clearLine()
	case document.DescriptionList:
		isBlock = true
	case document.DescriptionListTerm:
		r.clearLine()
	case document.DescriptionListDescription:
		r.clearLine()
	case document.Bold:
		r.mods.bold = true
	case document.Italic:
		r.mods.italic = true
	case document.Link:
		ctx, italic := linkContext(p.Variant)
		r.pushContext(ctx)
		r.mods.underline = true
		if italic {
			r.mods.italic = true
		}
		r.links = append(r.links, idx)
	default:
		// Blockquote, Reflink, the list-family leaves not listed above,
		// Linebreak, Unsupported/UnsupportedInline, and Unknown all behave
		// as "append children inline" with no extra hook.
	}

	if isBlock {
		r.ensureEmptyLine()
	}
}

func (r *renderer) postChildren(idx int) {
	node := r.doc.Node(idx)
	isBlock := false

	switch p := node.Payload.(type) {
	case document.Section:
		isBlock = true
	case document.Header:
		r.mods.bold = false
		r.popContext()
		isBlock = true
	case document.Division:
		isBlock = true
	case document.Paragraph:
		isBlock = true
	case document.Span:
		r.addWhitespace()
	case document.Hatnote:
		isBlock = true
	case document.RedirectMessage:
		isBlock = true
	case document.Disambiguation:
		isBlock = true
	case document.OrderedList:
		isBlock = true
	case document.UnorderedList:
		isBlock = true
	case document.ListItem:
		r.clearLine()
	case document.DescriptionList:
		isBlock = true
	case document.DescriptionListTerm:
		r.clearLine()
	case document.DescriptionListDescription:
		r.clearLine()
	case document.Bold:
		r.mods.bold = false
	case document.Italic:
		r.mods.italic = false
	case document.Link:
		_, italic := linkContext(p.Variant)
		r.popContext()
		r.mods.underline = false
		if italic {
			r.mods.italic = false
		}
		if len(r.links) > 0 && r.links[len(r.links)-1] == idx {
			r.links = r.links[:len(r.links)-1]
		}
		r.addWhitespace()
	default:
	}

	if isBlock {
		r.ensureEmptyLine()
	}
}
