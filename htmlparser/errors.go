package htmlparser

import "gitlab.com/tozd/go/errors"

// ErrEmptyDocument is the only failure Parse ever surfaces to its caller:
// every other malformed-element case degrades that one element to
// document.Unknown and continues.
var ErrEmptyDocument = errors.Base("parsed document is empty") //nolint:gochecknoglobals
