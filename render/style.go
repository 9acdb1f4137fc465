package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Builditluc/wiki-tui/link"
)

// Style carries the colour/attribute information a rendered word is drawn
// with. It is a lipgloss.Style so a terminal shell can apply it directly.
type Style = lipgloss.Style

// context is the base colour family a subtree renders under. Contexts
// nest via a stack; only the innermost one's colour applies, but its
// attributes (bold/italic/underline) come from the separately tracked
// modifier set, not the context itself.
type context int

const (
	contextNormal context = iota
	contextHeader
	contextLinkInternal
	contextLinkRedLink
	contextLinkOther
)

var red = lipgloss.Color("9") //nolint:gochecknoglobals

func (c context) baseStyle() Style {
	switch c {
	case contextHeader, contextLinkRedLink:
		return lipgloss.NewStyle().Foreground(red)
	default:
		return lipgloss.NewStyle()
	}
}

// linkContext resolves which context and which modifiers a Link node's
// subtree renders with. Internal and AnchorLink are plain (same-wiki,
// in-page) links and only get Underlined; RedLink additionally gets the
// header's red colouring; everything else that leaves the wiki or cannot be
// opened in-app (Media, External, RedLink) gets Italic on top of
// Underlined. ExternalToInternal is grouped with these rather than with
// Internal/AnchorLink: it points at a different wiki host and cannot be
// opened in-app either, so it gets the same "leaves the page" cue.
func linkContext(l link.Link) (ctx context, italic bool) {
	switch l.Variant() {
	case link.VariantInternal, link.VariantAnchor:
		return contextLinkInternal, false
	case link.VariantRedLink:
		return contextLinkRedLink, true
	default: // Media, External, ExternalToInternal
		return contextLinkOther, true
	}
}

// modifierSet tracks the currently active text attributes. Unlike the
// context stack, modifiers are applied and removed directly (not
// reference-counted): a nested Bold inside a Bold, closed once, clears
// Bold for the remainder of the enclosing scope. This mirrors the
// renderer's intentionally asymmetric push/pop discipline.
type modifierSet struct {
	bold, italic, underline bool
}

func (m modifierSet) apply(base Style) Style {
	s := base
	if m.bold {
		s = s.Bold(true)
	}
	if m.italic {
		s = s.Italic(true)
	}
	if m.underline {
		s = s.Underline(true)
	}
	return s
}
