package render

import "github.com/Builditluc/wiki-tui/document"

// Word is one unit of the renderer's output: either a rendered lexeme or a
// whitespace sentinel (NodeIndex == document.NoIndex, Width == 0) used to
// record where an inline construct (Span, Link) should be followed by a
// space without tying that space to any particular document node.
type Word struct {
	NodeIndex       int
	Content         string
	Style           Style
	Width           int
	WhitespaceWidth float64
	PenaltyWidth    float64
}

func (w Word) isWhitespaceSentinel() bool {
	return w.NodeIndex == document.NoIndex
}

// Line is one visual row: a sequence of styled, node-tagged words.
type Line []Word

// LinkEntry records the line a Link node's first rendered word landed on,
// a hint consumed by viewport selection reconciliation.
type LinkEntry struct {
	Y         int
	NodeIndex int
}

// RenderedDocument is the output of Render: finished lines plus the link
// index built while producing them.
type RenderedDocument struct {
	Lines     []Line
	LinkIndex []LinkEntry
}
