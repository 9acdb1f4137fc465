// Package page shapes MediaWiki action=parse and action=query responses
// into the Page value consumed by the rest of the core (render, viewport,
// store).
package page

import (
	"github.com/google/uuid"

	"github.com/Builditluc/wiki-tui/document"
	"github.com/Builditluc/wiki-tui/language"
)

// Page is one fetched article: its identity, its reshaped metadata, and the
// parsed document ready for rendering.
type Page struct {
	ID       uuid.UUID
	Title    string
	PageID   int64
	RevID    int64
	Endpoint string
	Language language.Language

	Document *document.Document

	// Sections holds the synthetic (Top) entry at index 0 followed by the
	// page's real sections renumbered from 1.
	Sections []Section

	LanguageLinks []LanguageLink
}

// Clone returns a deep-enough copy of p suitable for the page store's
// cache/active-stack split: everything but the parsed document (which is
// itself immutable once built, so sharing it is safe) is copied.
func (p *Page) Clone() *Page {
	clone := *p
	clone.Sections = append([]Section(nil), p.Sections...)
	clone.LanguageLinks = append([]LanguageLink(nil), p.LanguageLinks...)
	return &clone
}

// contentTopAnchor is the hard-coded anchor of the synthetic (Top) section
// entry inserted at index 0; it is a reserved name, even if some article's
// own heading happens to carry the same id.
const contentTopAnchor = "Content_Top"

// Section is one entry of a page's table of contents: either the synthetic
// (Top) entry (Index 0) or a real heading renumbered starting at 1.
type Section struct {
	Index    int
	TOCLevel int
	Number   string
	Line     string
	Anchor   string
}

// LanguageLink is a sibling-article reference to the same topic in a
// different language edition. Endpoint is a copy of the containing page's
// endpoint with its host replaced by the link's own host.
type LanguageLink struct {
	Language language.Language
	Title    string
	Endpoint string
	URL      string
}
