package link

import "gitlab.com/tozd/go/errors"

// ErrParse is the base sentinel for every link-classification failure; wrap
// it with errors.Is checks, e.g. errors.Is(err, link.ErrInvalidEncoding).
var ErrParse = errors.Base("link parse error") //nolint:gochecknoglobals

var (
	// ErrInvalidEncoding is returned when href fails percent-decoding.
	ErrInvalidEncoding = errors.BaseWrap(ErrParse, "invalid percent-encoding") //nolint:gochecknoglobals
	// ErrInvalidNamespace is returned when a /wiki/NS:Page prefix names an
	// unknown namespace.
	ErrInvalidNamespace = errors.BaseWrap(ErrParse, "invalid namespace") //nolint:gochecknoglobals
	// ErrMissingData is returned when a required attribute (e.g. title) is absent.
	ErrMissingData = errors.BaseWrap(ErrParse, "missing data") //nolint:gochecknoglobals
	// ErrProcessingFailure is the catch-all for an href matching no known shape.
	ErrProcessingFailure = errors.BaseWrap(ErrParse, "processing failure") //nolint:gochecknoglobals
)
