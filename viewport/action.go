package viewport

import "github.com/Builditluc/wiki-tui/link"

// Action is what OpenSelectedLink asks the surrounding shell to do. It is a
// closed sum type; callers are expected to switch on the concrete type.
type Action interface {
	isAction()
}

// OpenRequest asks the shell to fetch and display another page (Internal)
// or to jump to an in-page anchor (AnchorLink).
type OpenRequest struct {
	Variant link.Link
}

// ExternalNotice is a user-visible notice naming a URL the core will not
// open itself.
type ExternalNotice struct {
	URL string
}

// PageNotExistNotice is shown when the selected link is a RedLink.
type PageNotExistNotice struct {
	Title string
}

// UnsupportedNotice is shown for link variants the shell cannot act on
// (Media, ExternalToInternal).
type UnsupportedNotice struct{}

func (OpenRequest) isAction()        {}
func (ExternalNotice) isAction()     {}
func (PageNotExistNotice) isAction() {}
func (UnsupportedNotice) isAction()  {}
