package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Builditluc/wiki-tui/document"
	"github.com/Builditluc/wiki-tui/link"
	"github.com/Builditluc/wiki-tui/render"
)

func lineText(l render.Line) string {
	out := ""
	for _, w := range l {
		out += w.Content
		if w.WhitespaceWidth > 0 {
			out += " "
		}
	}
	return out
}

func TestRenderEmptyDocumentProducesNoLines(t *testing.T) {
	doc := document.New()
	got := render.Render(doc, 80)
	assert.Empty(t, got.Lines)
}

func TestRenderSimpleParagraphWraps(t *testing.T) {
	doc := document.New()
	p := doc.AddNode(document.NoIndex, document.Paragraph{})
	doc.AddNode(p, document.Text{Contents: "one two three four five"})

	got := render.Render(doc, 11)
	require.NotEmpty(t, got.Lines)
	for _, line := range got.Lines {
		width := 0
		for _, w := range line {
			width += w.Width
			if w.WhitespaceWidth > 0 {
				width++
			}
		}
		assert.LessOrEqual(t, width, 11)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := document.New()
	p := doc.AddNode(document.NoIndex, document.Paragraph{})
	doc.AddNode(p, document.Text{Contents: "repeatable output every single time"})

	first := render.Render(doc, 20)
	second := render.Render(doc, 20)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestRenderLinkRecordsLinkIndexEntry(t *testing.T) {
	doc := document.New()
	p := doc.AddNode(document.NoIndex, document.Paragraph{})
	linkNode := doc.AddNode(p, document.Link{Variant: link.Internal{Title: "Foo"}})
	doc.AddNode(linkNode, document.Text{Contents: "Foo"})

	got := render.Render(doc, 80)
	require.Len(t, got.LinkIndex, 1)
	assert.Equal(t, linkNode, got.LinkIndex[0].NodeIndex)
	assert.Equal(t, 0, got.LinkIndex[0].Y)
}

func TestRenderHeaderFlushesSurroundingBlankLines(t *testing.T) {
	doc := document.New()
	p1 := doc.AddNode(document.NoIndex, document.Paragraph{})
	doc.AddNode(p1, document.Text{Contents: "intro"})
	h := doc.AddNode(document.NoIndex, document.Header{ID: "History", Level: 2})
	doc.AddNode(h, document.Text{Contents: "History"})
	p2 := doc.AddNode(document.NoIndex, document.Paragraph{})
	doc.AddNode(p2, document.Text{Contents: "body"})

	got := render.Render(doc, 80)

	var sawBlank bool
	for _, line := range got.Lines {
		if len(line) == 0 {
			sawBlank = true
		}
	}
	assert.True(t, sawBlank, "block boundaries should insert an empty line")
}

func TestRenderBoldTogglesModifierAroundSubtree(t *testing.T) {
	doc := document.New()
	p := doc.AddNode(document.NoIndex, document.Paragraph{})
	doc.AddNode(p, document.Text{Contents: "plain "})
	b := doc.AddNode(p, document.Bold{})
	doc.AddNode(b, document.Text{Contents: "bold"})
	doc.AddNode(p, document.Text{Contents: " plain"})

	got := render.Render(doc, 80)
	require.NotEmpty(t, got.Lines)

	var sawBold, sawNonBold bool
	for _, w := range got.Lines[0] {
		if w.Content == "bold" {
			sawBold = w.Style.GetBold()
		}
		if w.Content == "plain" {
			sawNonBold = sawNonBold || !w.Style.GetBold()
		}
	}
	assert.True(t, sawBold)
	assert.True(t, sawNonBold)
}
