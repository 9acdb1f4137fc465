// Package htmlparser walks MediaWiki Parsoid HTML (via goquery) and emits
// the compact, index-addressed document model consumed by render and
// viewport.
package htmlparser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"gitlab.com/tozd/go/errors"

	"github.com/Builditluc/wiki-tui/document"
	"github.com/Builditluc/wiki-tui/language"
	"github.com/Builditluc/wiki-tui/link"
)

// Parse walks the body of an HTML document fetched from endpoint (in
// language pageLanguage) and builds a Document from it. logger receives
// Debug-level traces for elements degraded to Unknown; a zero-value logger
// is a valid, silent argument (the standard zerolog idiom).
func Parse(htmlBody, endpoint string, pageLanguage language.Language, logger zerolog.Logger) (*document.Document, errors.E) {
	goq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	doc := document.New()
	p := &parser{doc: doc, endpoint: endpoint, lang: pageLanguage, logger: logger}

	body := goq.Find("body")
	if body.Length() == 0 {
		body = goq.Selection
	}
	p.walkChildren(body, document.NoIndex)

	if doc.Len() == 0 {
		return nil, errors.WithStack(ErrEmptyDocument)
	}
	return doc, nil
}

type parser struct {
	doc      *document.Document
	endpoint string
	lang     language.Language
	logger   zerolog.Logger
}

// walkChildren emits at most one node per child of sel, recursing into each
// in turn, and attaches every emitted node to parent.
func (p *parser) walkChildren(sel *goquery.Selection, parent int) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		p.walkNode(child, parent)
	})
}

func (p *parser) walkNode(sel *goquery.Selection, parent int) {
	node := sel.Get(0)
	switch node.Type {
	case html.TextNode:
		p.doc.AddNode(parent, document.Text{Contents: node.Data})
	case html.ElementNode:
		p.walkElement(sel, parent)
	default:
		// Comments, doctype declarations, and the like carry no semantic content.
	}
}

func (p *parser) walkElement(sel *goquery.Selection, parent int) {
	name := goquery.NodeName(sel)

	if p.isIgnored(sel, name) {
		return
	}

	if kind, ok := unsupportedBlockKind(name); ok {
		p.doc.AddNode(parent, document.Unsupported{Kind: kind})
		return
	}
	if isUnsupportedInlineMath(sel, name) {
		p.doc.AddNode(parent, document.UnsupportedInline{Kind: document.UnsupportedInlineMath})
		return
	}

	if name == "a" {
		p.walkAnchor(sel, parent)
		return
	}

	payload, recurse := p.structuralPayload(sel, name)
	idx := p.doc.AddNode(parent, payload)
	if recurse {
		p.walkChildren(sel, idx)
	}
}

// isIgnored reports whether sel (and its whole subtree) should be dropped
// outright.
func (p *parser) isIgnored(sel *goquery.Selection, name string) bool {
	switch name {
	case "head", "style", "link":
		return true
	}
	for _, class := range []string{"noprint", "mw-editsection", "mw-empty-elt", "cs1-maint"} {
		if sel.HasClass(class) {
			return true
		}
	}
	if name == "ul" && sel.HasClass("portalbox") {
		return true
	}
	if name == "div" && (sel.HasClass("toc") || sel.HasClass("quotebox")) {
		return true
	}
	if name == "span" {
		typeofAttr := sel.AttrOr("typeof", "")
		for _, tok := range strings.Fields(typeofAttr) {
			if tok == "mw:Nowiki" {
				return true
			}
		}
	}
	return false
}

func unsupportedBlockKind(name string) (document.UnsupportedKind, bool) {
	switch name {
	case "table":
		return document.UnsupportedTable, true
	case "img", "image":
		return document.UnsupportedImage, true
	case "figure":
		return document.UnsupportedFigure, true
	case "pre":
		return document.UnsupportedPreformattedText, true
	}
	return 0, false
}

func isUnsupportedInlineMath(sel *goquery.Selection, name string) bool {
	return name == "span" && (sel.HasClass("texhtml") || sel.HasClass("mwe-math-element"))
}

// structuralPayload maps name (plus, for div/span, class) onto the node
// payload of the structural element table. The bool return says whether to
// recurse into children; it is false only for br, whose Linebreak node is
// always a leaf.
func (p *parser) structuralPayload(sel *goquery.Selection, name string) (document.Payload, bool) {
	switch name {
	case "section":
		if id, ok := parseSectionID(sel); ok {
			return document.Section{ID: id}, true
		}
		return document.Unknown{}, true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		id, ok := sel.Attr("id")
		if !ok {
			return document.Unknown{}, true
		}
		level, _ := strconv.Atoi(name[1:])
		return document.Header{ID: id, Level: level}, true
	case "p":
		return document.Paragraph{}, true
	case "div":
		switch {
		case sel.HasClass("redirectMsg"):
			return document.RedirectMessage{}, true
		case sel.HasClass("hatnote"):
			return document.Disambiguation{}, true
		default:
			return document.Division{}, true
		}
	case "span":
		if sel.HasClass("mw-reflink-text") {
			return document.Reflink{}, true
		}
		return document.Span{}, true
	case "blockquote":
		return document.Blockquote{}, true
	case "ol":
		return document.OrderedList{}, true
	case "ul":
		return document.UnorderedList{}, true
	case "li":
		return document.ListItem{}, true
	case "dl":
		return document.DescriptionList{}, true
	case "dt":
		return document.DescriptionListTerm{}, true
	case "dd":
		return document.DescriptionListDescription{}, true
	case "b":
		return document.Bold{}, true
	case "i":
		return document.Italic{}, true
	case "br":
		return document.Linebreak{}, false
	default:
		return document.Unknown{}, true
	}
}

func parseSectionID(sel *goquery.Selection) (int, bool) {
	raw, ok := sel.Attr("data-mw-section-id")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// recognizedRel reports whether rel is empty or one of the three Parsoid
// link-relation tokens this parser understands. An <a> carrying anything
// else (e.g. "mw:PageProp/Category") degrades wholesale to Unknown rather
// than being misclassified.
func recognizedRel(rel string) bool {
	switch rel {
	case "", relWikiLink, relMediaLink, relExtLink:
		return true
	default:
		return false
	}
}

const (
	relWikiLink  = "mw:WikiLink"
	relMediaLink = "mw:MediaLink"
	relExtLink   = "mw:ExtLink"
)

func (p *parser) walkAnchor(sel *goquery.Selection, parent int) {
	href, hasHref := sel.Attr("href")
	if !hasHref {
		p.degradeToUnknown(sel, parent, "anchor missing href")
		return
	}

	rel := sel.AttrOr("rel", "")
	if !recognizedRel(rel) {
		p.degradeToUnknown(sel, parent, "unrecognized link rel")
		return
	}

	var titlePtr *string
	if title, ok := sel.Attr("title"); ok {
		titlePtr = &title
	}

	classified, err := link.Classify(p.endpoint, href, titlePtr, p.lang)
	if err != nil {
		p.logger.Debug().Err(err).Str("href", href).Msg("degrading link to Unknown")
		p.degradeToUnknown(sel, parent, "link classification failed")
		return
	}

	if rel == relMediaLink {
		if ext, ok := classified.(link.External); ok {
			classified = link.Media{URL: ext.URL}
		}
	}

	idx := p.doc.AddNode(parent, document.Link{Variant: classified})
	p.walkChildren(sel, idx)
}

func (p *parser) degradeToUnknown(sel *goquery.Selection, parent int, reason string) {
	p.logger.Debug().Str("reason", reason).Msg("degrading element to Unknown")
	idx := p.doc.AddNode(parent, document.Unknown{})
	p.walkChildren(sel, idx)
}
