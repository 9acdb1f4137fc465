package viewport

import "gitlab.com/tozd/go/errors"

var (
	// ErrNoSelection is returned by OpenSelectedLink when nothing is
	// currently selected.
	ErrNoSelection = errors.Base("no link currently selected")
	// ErrNotALink is returned when the selected entry no longer resolves
	// to a Link payload (the document changed under the viewport).
	ErrNotALink = errors.Base("selection does not refer to a link")
)
